package types

type Role string

const (
	ManagerRole Role = "Manager"
	UserRole    Role = "User"
)

type Account struct {
	Id        int64  `json:"id"`
	Login     string `json:"login" validate:"required,email"`
	Password  string `json:"-" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      Role   `json:"role" validate:"required,oneof=Manager User"`
	State     bool   `json:"state"`
}

type AccountPostData struct {
	Login        string `json:"login" binding:"required"`
	Password     string `json:"password" binding:"required,gt=8"`
	SamePassword string `json:"samePassword"`
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
}
