package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/anmshpython/to-do-list/internal/auth"
	"github.com/anmshpython/to-do-list/internal/dto"
	"github.com/anmshpython/to-do-list/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles register, login and logout pages.
type AuthHandler struct {
	flasher
	sessions *auth.Store
	userSvc  *service.UserService
	taskSvc  *service.TaskService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Store, userSvc *service.UserService, taskSvc *service.TaskService) *AuthHandler {
	return &AuthHandler{flasher: flasher{sessions}, sessions: sessions, userSvc: userSvc, taskSvc: taskSvc}
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"identity": auth.IdentityFromContext(c),
		"flashes":  h.popFlashes(c),
	})
}

// Register creates the account, signs the visitor in and flushes any drafts
// accumulated before registering.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"identity": auth.IdentityFromContext(c),
			"error":    "Please fill in a valid email, name and password.",
		})
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), form.Email, form.Name, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			h.flash(c, "You've already signed up with that email, log in instead!")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			c.HTML(http.StatusBadRequest, "register.html", gin.H{
				"identity": auth.IdentityFromContext(c),
				"error":    err.Error(),
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{
			"identity": auth.IdentityFromContext(c),
			"error":    "Registration failed, please try again.",
		})
		return
	}
	h.signIn(c, user.ID)
	c.Redirect(http.StatusFound, "/")
}

// LoginPage renders the sign-in form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "sign_in.html", gin.H{
		"identity": auth.IdentityFromContext(c),
		"flashes":  h.popFlashes(c),
	})
}

// Login authenticates and binds the session to the user. The two failure
// flashes are kept distinct, as the legacy app surfaced them.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "sign_in.html", gin.H{
			"identity": auth.IdentityFromContext(c),
			"error":    "Please fill in your email and password.",
		})
		return
	}
	user, err := h.userSvc.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail):
			h.flash(c, "That email does not exist, please try again.")
		case errors.Is(err, service.ErrInvalidCredentials):
			h.flash(c, "Password incorrect, please try again.")
		default:
			h.flash(c, "Login failed, please try again.")
			log.Printf("login: %v", err)
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.signIn(c, user.ID)
	c.Redirect(http.StatusFound, "/")
}

// Logout destroys the session (drafts die with it) and expires the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid := auth.SessionIDFromContext(c); sid != "" {
		_ = h.sessions.Delete(c.Request.Context(), sid)
	}
	auth.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// signIn binds the current session to the user and flushes pending drafts.
func (h *AuthHandler) signIn(c *gin.Context, userID int64) {
	ctx := c.Request.Context()
	sid := auth.SessionIDFromContext(c)
	if sid == "" {
		// Session creation failed earlier in the middleware; mint one now so
		// the login sticks.
		id, err := h.sessions.Create(ctx)
		if err != nil {
			log.Printf("create session: %v", err)
			return
		}
		sid = id
		auth.SetSessionCookie(c, h.sessions, sid)
	}
	if err := h.sessions.SetUser(ctx, sid, userID); err != nil {
		log.Printf("bind session: %v", err)
		return
	}
	drafts, err := h.sessions.Drafts(ctx, sid)
	if err != nil {
		log.Printf("read drafts: %v", err)
		return
	}
	if len(drafts) == 0 {
		return
	}
	if err := h.taskSvc.FlushDrafts(ctx, userID, drafts); err != nil {
		log.Printf("flush drafts: %v", err)
		return
	}
	if err := h.sessions.ClearDrafts(ctx, sid); err != nil {
		log.Printf("clear drafts: %v", err)
	}
}
