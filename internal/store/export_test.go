package store

const (
	GetQuizSQL        = getQuizSQL
	ListQuizzesSQL    = listQuizzesSQL
	CountQuizzesSQL   = countQuizzesSQL
	FindByQuestionSQL = findByQuestionSQL
	CreateQuizSQL     = createQuizSQL
	UpdateQuizSQL     = updateQuizSQL
	DeleteQuizSQL     = deleteQuizSQL
)

type Timestamp = timestamp
