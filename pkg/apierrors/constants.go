package apierrors

const (
	MsgNoToken            = "noTokenProvided"
	MsgInvalidToken       = "invalidToken"
	MsgFailAuthenticate   = "failAuthenticate"
	MsgValidationFailed   = "validationFailed"
	MsgInvalidJSON        = "invalidJsonPayload"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailListTask       = "errorListTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailToggleTask     = "failToggleTask"
	MsgUserExists         = "userExists"
	MsgInvalidCredentials = "invalidCredentials"
	MsgFailRegister       = "failRegister"
	MsgFailLogin          = "failLogin"
	MsgRouteNotFound      = "routeNotFound"
	MsgInternal           = "internalError"
	MsgInternalDetail     = "internalErrorDetail"
	MsgTooManyRequests    = "tooManyRequests"
)
