package dto

// RegisterForm is the POST /register body.
type RegisterForm struct {
	Email    string `form:"email" binding:"required,email"`
	Name     string `form:"name" binding:"required,min=1,max=100"`
	Password string `form:"password" binding:"required,min=1"`
}

// LoginForm is the POST /login body.
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// DraftForm is the POST / body: a single description field.
type DraftForm struct {
	Description string `form:"description" binding:"required,min=1,max=250"`
}

// TaskForm is the POST /add_new_task body. The field is named "name" for
// compatibility with the legacy form.
type TaskForm struct {
	Name     string `form:"name" binding:"required,min=1,max=250"`
	TaskDate string `form:"task_date" binding:"required,max=250"`
}

// ContactForm is the POST /contact body.
type ContactForm struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Phone   string `form:"phone"`
	Message string `form:"message" binding:"required"`
}
