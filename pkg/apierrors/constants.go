package apierrors

const (
	MsgServerError        = "serverError"
	MsgValidationError    = "validationError"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgTaskNotFound       = "taskNotFound"
	MsgTasksMustBeArray   = "tasksMustBeArray"
	MsgEmptyUpdate        = "emptyUpdate"

	MsgInvalidWorkspaceID = "invalidWorkspaceID"
	MsgWorkspaceNotFound  = "workspaceNotFound"

	MsgNoTokenProvided = "noTokenProvided"
	MsgInvalidToken    = "invalidToken"

	MsgEmailInUse              = "emailInUse"
	MsgUserNotFound            = "userNotFound"
	MsgEmailAlreadyVerified    = "emailAlreadyVerified"
	MsgInvalidVerificationCode = "invalidVerificationCode"
	MsgVerificationCodeExpired = "verificationCodeExpired"
	MsgInvalidCredentials      = "invalidCredentials"
	MsgEmailNotVerified        = "emailNotVerified"
	MsgInvalidResetLink        = "invalidResetLink"
	MsgTooManyRequests         = "tooManyRequests"
	MsgEndpointNotFound        = "endpointNotFound"
)

// Success messages share the translation bundle with errors.
const (
	MsgTaskDeleted      = "taskDeleted"
	MsgTasksUpdated     = "tasksUpdated"
	MsgWorkspaceDeleted = "workspaceDeleted"
	MsgAccountCreated   = "accountCreated"
	MsgEmailVerified    = "emailVerified"
	MsgOTPResent        = "otpResent"
	MsgResetLinkSent    = "resetLinkSent"
	MsgPasswordReset    = "passwordReset"
)
