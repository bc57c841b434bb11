package domain

// ResponseCode is the numeric status the question bank attaches to a
// question batch. Anything not listed here travels as its raw value.
type ResponseCode int

const (
	CodeSuccess          ResponseCode = 0
	CodeNoResults        ResponseCode = 1
	CodeInvalidParameter ResponseCode = 2
	CodeTokenNotFound    ResponseCode = 3
	CodeTokenEmpty       ResponseCode = 4
	CodeRateLimited      ResponseCode = 5
)

// InvalidToken reports whether the code means the session token is
// expired or exhausted and must be reset before retrying. Only codes 3
// and 4 qualify; every other code, known or not, does not trigger a
// reset.
func (c ResponseCode) InvalidToken() bool {
	return c == CodeTokenNotFound || c == CodeTokenEmpty
}

// QuestionBatch is one question-fetch result. A valid-but-empty batch
// is not an error: Code carries the semantics.
type QuestionBatch struct {
	Code      ResponseCode
	Questions []Question
}
