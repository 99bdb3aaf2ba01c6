package client

import (
	"context"
	"net/http"
	"strconv"
)

// Storage keys for the persisted session.
const (
	tokenKey    = "token"
	userIDKey   = "user_id"
	usernameKey = "username"
)

// RouteRoot and RouteLogin are the navigation targets the session and route
// guard steer to.
const (
	RouteRoot  = "/"
	RouteLogin = "/login"
)

// SessionStore owns the durable session state: token, user id, and username.
// It is initialized by reading storage and mutated only through its own
// methods.
type SessionStore struct {
	api     api
	storage Storage
	toaster *Toaster

	// Navigate, when set, is invoked with a route target after logout and
	// successful login/signup.
	Navigate func(route string)
}

// NewSessionStore builds a session over the given storage. The store issues
// its own login/signup calls without the bearer transport, since no token
// exists yet.
func NewSessionStore(baseURL string, storage Storage, toaster *Toaster) *SessionStore {
	return &SessionStore{
		api:     api{baseURL: baseURL, http: http.DefaultClient},
		storage: storage,
		toaster: toaster,
	}
}

type authResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// Login authenticates and persists the returned session. The server's
// failure message is surfaced as an error toast.
func (s *SessionStore) Login(ctx context.Context, username, password string) error {
	var out authResponse
	err := s.api.do(ctx, http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		s.notifyErr(err, "Login failed.")
		return err
	}

	s.establish(out)
	return nil
}

// Signup registers a new account and persists the returned session.
func (s *SessionStore) Signup(ctx context.Context, payload SignupPayload) error {
	var out authResponse
	err := s.api.do(ctx, http.MethodPost, "/signup", map[string]any{"user": payload}, &out)
	if err != nil {
		s.notifyErr(err, "Signup failed.")
		return err
	}

	s.establish(out)
	return nil
}

func (s *SessionStore) establish(out authResponse) {
	s.SetToken(out.Token)
	s.SetUser(out.User.ID, out.User.Username)
	if s.Navigate != nil {
		s.Navigate(RouteRoot)
	}
}

// SetToken stores the bearer token.
func (s *SessionStore) SetToken(token string) {
	s.storage.Set(tokenKey, token)
}

// Token returns the stored bearer token, or "" when logged out. It also
// satisfies TokenSource for BearerTransport.
func (s *SessionStore) Token() string {
	token, _ := s.storage.Get(tokenKey)
	return token
}

// SetUser stores the user id and username together.
func (s *SessionStore) SetUser(id uint, username string) {
	s.SetUserID(id)
	s.storage.Set(usernameKey, username)
}

// SetUserID stores just the user id.
func (s *SessionStore) SetUserID(id uint) {
	s.storage.Set(userIDKey, strconv.FormatUint(uint64(id), 10))
}

// UserID returns the stored user id, or 0 when absent.
func (s *SessionStore) UserID() uint {
	raw, ok := s.storage.Get(userIDKey)
	if !ok {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// CurrentUser returns the stored username, or "" when logged out.
func (s *SessionStore) CurrentUser() string {
	username, _ := s.storage.Get(usernameKey)
	return username
}

// IsLoggedIn reports token presence. Expiry is not checked client-side; an
// expired token simply yields 401 on the next request.
func (s *SessionStore) IsLoggedIn() bool {
	return s.Token() != ""
}

// ClearUser removes all session keys.
func (s *SessionStore) ClearUser() {
	s.storage.Delete(tokenKey)
	s.storage.Delete(userIDKey)
	s.storage.Delete(usernameKey)
}

// Logout clears the session and navigates to the login view.
func (s *SessionStore) Logout() {
	s.ClearUser()
	if s.Navigate != nil {
		s.Navigate(RouteLogin)
	}
}

func (s *SessionStore) notifyErr(err error, fallback string) {
	if s.toaster == nil {
		return
	}
	if apiErr, ok := err.(*APIError); ok {
		s.toaster.Error(apiErr.FirstMessage(fallback))
		return
	}
	s.toaster.Error(fallback)
}
