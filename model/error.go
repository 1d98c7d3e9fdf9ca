package model

import (
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"
)

const (
	ErrorParams           = 100001
	ErrorEmptyId          = 100002
	ErrorMissingInputMsg  = 100003
	ErrorInputTooLong     = 100004
	ErrorSessionStore     = 100005
	ErrorMessageLogStore  = 100006
	ErrorLLM              = 100007
	ErrorKnowledgeBase    = 100008
	ErrorNotFound         = 100009
	ErrorNewRepo          = 100010
	ErrorRequestNotOpen   = 100011
	ErrorApplicationState = 100012
	ErrorStoreUnavailable = 100013
)

var ErrorMessages = map[int]string{
	ErrorParams:           "invalid request parameters",
	ErrorEmptyId:          "id is required",
	ErrorMissingInputMsg:  "input_msg field is required",
	ErrorInputTooLong:     "input_msg exceeds maximum length",
	ErrorSessionStore:     "session store error",
	ErrorMessageLogStore:  "message log store error",
	ErrorLLM:              "language model error",
	ErrorKnowledgeBase:    "knowledge base error",
	ErrorNotFound:         "resource not found",
	ErrorNewRepo:          "repository initialization failed",
	ErrorRequestNotOpen:   "tour request is not open",
	ErrorApplicationState: "application is not in an acceptable state",
	ErrorStoreUnavailable: "backing store unavailable",
}

type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	InnerError error  `json:"inner_error"`
}

func (err Error) Error() string {
	return err.Message
}

func (err Error) String() string {
	return err.InnerError.Error()
}

func NewError(code int, innerError error) *Error {
	if innerError != nil {
		var re = regexp.MustCompile(`[\n\t]+`)
		innerErrorString := re.ReplaceAllString(fmt.Sprintf("%+v", innerError), " ")
		log.Errorf("NewError code:%d, message:%s, innerError:%+v\n", code, ErrorMessages[code], innerErrorString)
	}
	return &Error{
		Code:       code,
		Message:    ErrorMessages[code],
		InnerError: nil,
	}
}

func NewErrorWithMessage(code int, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		InnerError: nil,
	}
}
