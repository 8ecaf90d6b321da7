package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"

	"pawmarket/internal/domain/entity"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseAuthClient verifies Firebase ID tokens with the Admin SDK and signs
// users in with email and password through the Identity Toolkit REST API.
type FirebaseAuthClient struct {
	client     *auth.Client
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client:     client,
		apiKey:     apiKey,
		baseURL:    identityToolkitURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, idToken string) (string, error) {
	token, err := f.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}
	return token.UID, nil
}

func (f *FirebaseAuthClient) GetUser(ctx context.Context, uid string) (*entity.User, error) {
	record, err := f.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to load user", err)
	}

	return &entity.User{
		ID:          record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
	}, nil
}

func (f *FirebaseAuthClient) RevokeSessions(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// credentialErrors are the Identity Toolkit messages caused by bad user input.
var credentialErrors = map[string]bool{
	"EMAIL_NOT_FOUND":           true,
	"INVALID_PASSWORD":          true,
	"INVALID_LOGIN_CREDENTIALS": true,
	"INVALID_EMAIL":             true,
	"USER_DISABLED":             true,
	"MISSING_PASSWORD":          true,
}

func (f *FirebaseAuthClient) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	if f.apiKey == "" {
		return nil, errors.Internal("Password sign-in is not configured", nil)
	}

	jsonData, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, errors.Internal("Failed to encode sign-in request", err)
	}

	url := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", f.baseURL, f.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, errors.Internal("Failed to create sign-in request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Transient(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Transient(err)
	}

	if resp.StatusCode != http.StatusOK {
		var idErr identityError
		_ = json.Unmarshal(body, &idErr)
		if credentialErrors[idErr.Error.Message] {
			return nil, errors.Unauthorized("Invalid email or password", nil)
		}
		logger.Error("Identity toolkit sign-in failed: status=%d body=%s", resp.StatusCode, string(body))
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, errors.Transient(fmt.Errorf("identity toolkit status %d", resp.StatusCode))
		}
		return nil, errors.Internal("Sign-in failed", fmt.Errorf("identity toolkit: %s", idErr.Error.Message))
	}

	var out signInResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.Internal("Failed to parse sign-in response", err)
	}

	return &entity.Session{
		UserID:       out.LocalID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    out.ExpiresIn,
	}, nil
}
