package user

const (
	TableUsers             = "users"
	TableProfessionResults = "user_profession_results"
	TableProgress          = "user_progress"
)

const (
	ColID        = "id"
	ColEmail     = "email"
	ColNickname  = "nickname"
	ColBirthDate = "birth_date"
	ColUserID    = "user_id"
)

type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Nickname  string `json:"nickname"`
	BirthDate string `json:"birth_date"`
}
