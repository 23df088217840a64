package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "github.com/eventhub/eventhub/internal/delivery/http/helpers"
	"github.com/eventhub/eventhub/internal/delivery/http/middleware"
	"github.com/eventhub/eventhub/internal/domain"
)

// CredentialsRequest is the request body for POST /auth/signup and POST /auth/login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (c CredentialsRequest) Validate() []string {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return []string{"Please fill in all fields"}
	}
	return nil
}

// LoginView is the data of GET /login.
type LoginView struct {
	SignedIn bool `json:"signed_in"`
}

// LoginViewSuccessResponse is the success response envelope for GET /login (200).
type LoginViewSuccessResponse struct {
	Data          LoginView             `json:"data"`
	Error         *h.APIError           `json:"error"`
	Notifications []domain.Notification `json:"notifications"`
}

type AuthController struct {
	Logger  *slog.Logger
	Cookies middleware.Cookies
}

func NewAuthController(logger *slog.Logger, cookies middleware.Cookies) *AuthController {
	return &AuthController{
		Logger:  logger,
		Cookies: cookies,
	}
}

// LoginPage godoc
// @Summary Login view
// @Description Shows the login view. A signed-in client is redirected to its dashboard.
// @Tags auth
// @Produce json
// @Success 200 {object} controllers.LoginViewSuccessResponse
// @Success 303 "redirect to the dashboard"
// @Failure 503 {object} helpers.APIResponse "error.code: backend_uninitialized"
// @Router /login [get]
func (a *AuthController) LoginPage(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	d, err := c.Gate.Resolve(r.Context(), false)
	if err != nil {
		h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUninitialized, "session still loading")
		return
	}
	if d.Allowed() {
		h.Redirect(w, r, domain.LandingRoute(c.Session.Identity()))
		return
	}
	respond(w, c, http.StatusOK, LoginView{})
}

// SignUp godoc
// @Summary Register an account
// @Description Creates an account. The client stays signed out and is told to log in.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Email and password"
// @Success 201 {object} helpers.APIResponse "data is null; notifications carry the result"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: backend_uninitialized"
// @Router /auth/signup [post]
func (a *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	var req CredentialsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Session.SignUp(r.Context(), req.Email, req.Password); err != nil {
		fail(a.Logger, w, r, c, err)
		return
	}
	respond(w, c, http.StatusCreated, nil)
}

// Login godoc
// @Summary Sign in with email and password
// @Description On success the token cookie is set and the client is redirected to its dashboard.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Email and password"
// @Success 303 "redirect to /admin/dashboard or /user/dashboard"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: invalid_credentials"
// @Failure 503 {object} helpers.APIResponse "error.code: backend_uninitialized"
// @Router /auth/login [post]
func (a *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	var req CredentialsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Session.SignIn(r.Context(), req.Email, req.Password); err != nil {
		fail(a.Logger, w, r, c, err)
		return
	}
	if sess := c.Session.Session(); sess != nil {
		a.Cookies.SetToken(w, sess.AccessToken, sess.ExpiresAt)
	}
	navigate(w, r, c, domain.RouteUserDashboard)
}

// Logout godoc
// @Summary Sign out
// @Description Ends the session, clears the token cookie and redirects to /login.
// @Tags auth
// @Produce json
// @Success 303 "redirect to /login"
// @Failure 502 {object} helpers.APIResponse "error.code: remote_failure"
// @Router /auth/logout [post]
func (a *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	if err := c.Session.SignOut(r.Context()); err != nil {
		fail(a.Logger, w, r, c, err)
		return
	}
	a.Cookies.ClearToken(w)
	navigate(w, r, c, domain.RouteLogin)
}
