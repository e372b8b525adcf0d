package course

const (
	TableCourses          = "courses"
	TableChapters         = "chapters"
	TableChapterQuestions = "chapter_tests"
)

const (
	ColID              = "id"
	ColTitle           = "title"
	ColDescription     = "description"
	ColCourseID        = "course_id"
	ColChapterID       = "chapter_id"
	ColMainInformation = "main_information"
	ColOrderInCourse   = "order_in_course"
	ColQuestion        = "question"
	ColOptions         = "options"
)

type NewChapter struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	MainInformation string `json:"main_information"`
	OrderInCourse   *int   `json:"order_in_course"`
}
