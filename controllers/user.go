package controllers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"go-showcase/middleware"
	"go-showcase/models"
	"go-showcase/store"
	"go-showcase/utils"

	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"
)

// UserController handles user-related requests
type UserController struct {
	Users       UserStore
	Sessions    Sessions
	Pictures    utils.PictureStore
	AdminSecret string
}

// NewUserController creates a new UserController
func NewUserController(users UserStore, sessions Sessions, pictures utils.PictureStore, adminSecret string) *UserController {
	return &UserController{
		Users:       users,
		Sessions:    sessions,
		Pictures:    pictures,
		AdminSecret: adminSecret,
	}
}

// createAccount hashes the password and stores a new user. Emails are matched
// exactly as given. A taken email is reported as DuplicateEmail whether the
// pre-check or the unique index catches it.
func (uc *UserController) createAccount(ctx context.Context, fullName, email, password string, isAdmin bool) (*models.User, error) {
	taken, err := uc.Users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, utils.ValidationError("password must be at most 72 characters")
	}
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: strings.TrimSpace(fullName),
		Email:    email,
		Password: string(hashedPassword),
		IsAdmin:  isAdmin,
	}
	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, utils.ErrDuplicateEmail
		}
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *UserController) adminSecretMatches(given string) bool {
	if uc.AdminSecret == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(uc.AdminSecret)) == 1
}

// startSession issues a token, sets the cookie and writes the user with the token.
func (uc *UserController) startSession(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, err := uc.Sessions.Issue(user.ID)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	uc.Sessions.SetCookie(w, token)
	utils.WriteJSON(w, status, models.AuthResponse{User: *user, Token: token})
}

// Signup handles account registration
func (uc *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	user, err := uc.createAccount(r.Context(), req.FullName, req.Email, req.Password, uc.adminSecretMatches(req.AdminSecret))
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().Str("user_id", user.ID.Hex()).Bool("admin", user.IsAdmin).Msg("user signed up")
	uc.startSession(w, r, http.StatusCreated, user)
}

// Login handles user login
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	user, err := uc.Users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, r, utils.ErrInvalidCredentials)
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	// Compare the stored hashed password with the provided password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.WriteError(w, r, utils.ErrInvalidCredentials)
		return
	}
	user.Password = ""

	uc.startSession(w, r, http.StatusOK, user)
}

// Logout clears the session cookie
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	uc.Sessions.ClearCookie(w)
	utils.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

// CheckAuth returns the authenticated user
func (uc *UserController) CheckAuth(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.WriteError(w, r, utils.ErrUnauthenticated)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

// UpdateProfilePic stores a new profile picture for the authenticated user
func (uc *UserController) UpdateProfilePic(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.WriteError(w, r, utils.ErrUnauthenticated)
		return
	}

	var req models.ProfilePicRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	jpegData, err := utils.PrepareProfilePic(req.ProfilePic)
	if err != nil {
		if errors.Is(err, utils.ErrBadImage) {
			utils.WriteError(w, r, utils.ValidationError("Profile pic could not be read as an image"))
			return
		}
		utils.WriteError(w, r, err)
		return
	}

	url, err := uc.Pictures.Save(r.Context(), user.ID.Hex(), jpegData)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	updated, err := uc.Users.SetProfilePic(r.Context(), user.ID, url)
	if err != nil {
		utils.WriteError(w, r, storeError(err, "User not found"))
		return
	}
	updated.Password = ""
	utils.WriteJSON(w, http.StatusOK, updated)
}

// ListUsers returns every account (Admin only)
func (uc *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := uc.Users.List(r.Context())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	utils.WriteJSON(w, http.StatusOK, users)
}

// CreateUser adds an account without starting a session (Admin only)
func (uc *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	user, err := uc.createAccount(r.Context(), req.FullName, req.Email, req.Password, req.IsAdmin)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, user)
}
