package services

import "errors"

// Sentinel errors shared across services. The handler layer maps each of
// these onto an HTTP status; anything unrecognized becomes a 500.
var (
	// Accounts
	ErrUserNotFound       = errors.New("no user found with the given ID")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrWrongPassword      = errors.New("passwords do not match, please provide the correct password")
	ErrPasswordMismatch   = errors.New("password and password confirmation do not match")
	ErrResetTokenInvalid  = errors.New("token expired, please try forgot password again")
	ErrUnauthenticated    = errors.New("you are not logged in, please log in")

	// Classes
	ErrClassNotFound      = errors.New("no class found with the given ID")
	ErrTrainerNotFound    = errors.New("no trainer found with the given ID")
	ErrDailyQuotaExceeded = errors.New("can not add more than 5 classes per day")
	ErrClassNotAvailable  = errors.New("the class is not available anymore")
	ErrClassFull          = errors.New("a class cannot have more than 10 trainees")
	ErrAlreadyBooked      = errors.New("trainee is already enrolled to this class")
)
