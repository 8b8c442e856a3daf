package infolist

var CreateError = createError
