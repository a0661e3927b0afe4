package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/gymbuddy/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements authService for handler tests.
type fakeAuthService struct {
	session    *Session
	sessionErr error
	user       *User
	userErr    error
	signUpErr  error
	signInErr  error
	signOutErr error

	gotToken string
}

func (f *fakeAuthService) GetSession(_ context.Context, token string) (*Session, error) {
	f.gotToken = token
	return f.session, f.sessionErr
}

func (f *fakeAuthService) SignUp(_ context.Context, params SignUpParams) (*User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &User{ID: "p-1", AuthID: "a-1", Email: params.Email, Username: params.Profile.Username}, nil
}

func (f *fakeAuthService) SignIn(context.Context, string, string) (*Session, error) {
	return f.session, f.signInErr
}

func (f *fakeAuthService) SignOut(_ context.Context, token string) error {
	f.gotToken = token
	return f.signOutErr
}

func (f *fakeAuthService) CurrentUser(_ context.Context, token string) (*User, error) {
	f.gotToken = token
	return f.user, f.userErr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp pkg.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	return errResp.Error
}

func TestHandler_HandleSignUp(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Created",
			body:           `{"email":"a@b.com","password":"secret1","profile":{"username":"ab"}}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "InvalidJSON",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
		{
			name:           "InvalidParams",
			body:           `{}`,
			serviceErr:     ErrInvalidSignUp,
			expectedStatus: http.StatusBadRequest,
			expectedError:  ErrInvalidSignUp.Error(),
		},
		{
			name:           "AlreadyExists",
			body:           `{}`,
			serviceErr:     ErrAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedError:  "email or username already taken",
		},
		{
			name:           "ProfileCreation",
			body:           `{}`,
			serviceErr:     errors.Join(ErrProfileCreation, errors.New("db down")),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  ErrProfileCreation.Error(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler(&fakeAuthService{signUpErr: tc.serviceErr})

			rr := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/auth/signup", bytes.NewBufferString(tc.body))
			handler.HandleSignUp(rr, req)

			require.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeError(t, rr))
				return
			}

			var resp userResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			require.NotNil(t, resp.User)
			assert.Equal(t, "a@b.com", resp.User.Email)
			assert.Equal(t, "ab", resp.User.Username)
		})
	}
}

func TestHandler_HandleSignIn(t *testing.T) {
	session := &Session{Token: "tok", UserID: "a-1", CreatedAt: time.Unix(1700000000, 0)}

	handler := NewHandler(&fakeAuthService{session: session})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/signin", bytes.NewBufferString(`{"email":"a@b.com","password":"x"}`))
	handler.HandleSignIn(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Session)
	assert.Equal(t, "tok", resp.Session.Token)
	assert.Equal(t, "a-1", resp.Session.UserID)

	handler = NewHandler(&fakeAuthService{signInErr: ErrWrongCredentials})
	rr = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/auth/signin", bytes.NewBufferString(`{"email":"a@b.com","password":"x"}`))
	handler.HandleSignIn(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, ErrWrongCredentials.Error(), decodeError(t, rr))

	handler = NewHandler(&fakeAuthService{signInErr: errors.New("redis down")})
	rr = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/auth/signin", bytes.NewBufferString(`{"email":"a@b.com","password":"x"}`))
	handler.HandleSignIn(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "sign in failed", decodeError(t, rr))
}

func TestHandler_HandleSignOut(t *testing.T) {
	service := &fakeAuthService{}
	handler := NewHandler(service)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/signout", nil)
	req.Header.Set("Authorization", "Bearer tok")
	handler.HandleSignOut(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "tok", service.gotToken)

	service.signOutErr = ErrNotAuthenticated
	rr = httptest.NewRecorder()
	handler.HandleSignOut(rr, httptest.NewRequest("POST", "/auth/signout", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	service.signOutErr = errors.New("redis down")
	rr = httptest.NewRecorder()
	handler.HandleSignOut(rr, httptest.NewRequest("POST", "/auth/signout", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_HandleSession(t *testing.T) {
	service := &fakeAuthService{}
	handler := NewHandler(service)

	rr := httptest.NewRecorder()
	handler.HandleSession(rr, httptest.NewRequest("GET", "/auth/session", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"session":null}`, rr.Body.String())

	service.sessionErr = errors.New("redis down")
	rr = httptest.NewRecorder()
	handler.HandleSession(rr, httptest.NewRequest("GET", "/auth/session", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_HandleCurrentUser(t *testing.T) {
	service := &fakeAuthService{
		user: &User{ID: "p-1", AuthID: "a-1", Email: "a@b.com", Name: "Ana", Username: "ana"},
	}
	handler := NewHandler(service)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	handler.HandleCurrentUser(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "tok", service.gotToken)
	assert.JSONEq(t,
		`{"user":{"id":"p-1","authId":"a-1","email":"a@b.com","name":"Ana","username":"ana"}}`,
		rr.Body.String(),
	)

	service.user = nil
	rr = httptest.NewRecorder()
	handler.HandleCurrentUser(rr, httptest.NewRequest("GET", "/auth/me", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"user":null}`, rr.Body.String())

	service.userErr = errors.New("db down")
	rr = httptest.NewRecorder()
	handler.HandleCurrentUser(rr, httptest.NewRequest("GET", "/auth/me", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
