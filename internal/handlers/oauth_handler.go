package handlers

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// OAuthConfig holds provider client identifiers used to verify tokens
// obtained by the mobile app's native sign-in flows.
type OAuthConfig struct {
	GoogleClientID string
	AppleClientID  string
}

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type oauthUserInfo struct {
	Subject string
	Email   string
	Name    string
}

type googleSignInRequest struct {
	AccessToken string `json:"access_token"`
}

type appleSignInRequest struct {
	IDToken string `json:"id_token"`
	Nonce   string `json:"nonce"`
	// Apple only supplies the name on first authorization, via the client
	Name string `json:"name"`
}

// GoogleSignIn handles POST /api/auth/oauth/google. The app completes
// Google sign-in natively and posts the resulting access token; the
// server verifies it against the userinfo endpoint.
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req googleSignInRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.AccessToken == "" {
		respondWithError(w, http.StatusBadRequest, "Missing access token", "", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userInfo, err := fetchGoogleUser(ctx, req.AccessToken)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Google sign-in failed", "Google token verification failed", err)
		return
	}

	h.completeOAuthLogin(w, r, "google", userInfo)
}

// AppleSignIn handles POST /api/auth/oauth/apple. The app posts the
// id_token from the native Sign in with Apple flow; the server verifies
// its signature and claims against Apple's published keys.
func (h *AuthHandler) AppleSignIn(w http.ResponseWriter, r *http.Request) {
	var req appleSignInRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.IDToken == "" {
		respondWithError(w, http.StatusBadRequest, "Missing id_token", "", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, err := parseAppleIDToken(ctx, req.IDToken, h.oauthConfig.AppleClientID, req.Nonce)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Apple sign-in failed", "Apple token verification failed", err)
		return
	}

	h.completeOAuthLogin(w, r, "apple", oauthUserInfo{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    req.Name,
	})
}

func (h *AuthHandler) completeOAuthLogin(w http.ResponseWriter, r *http.Request, provider string, userInfo oauthUserInfo) {
	session, user, err := h.authService.LoginWithOAuth(provider, userInfo.Subject, userInfo.Email, userInfo.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Sign-in failed", "OAuth login failed", err)
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse{
		Token:     session.ID,
		ExpiresAt: session.ExpiresAt,
		User:      userResponse{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

func fetchGoogleUser(ctx context.Context, accessToken string) (oauthUserInfo, error) {
	token := &oauth2.Token{AccessToken: accessToken}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return oauthUserInfo{}, errors.New("failed to fetch Google user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return oauthUserInfo{}, errors.New("failed to fetch Google user info")
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return oauthUserInfo{}, errors.New("failed to parse Google user info")
	}
	if payload.ID == "" || payload.Email == "" {
		return oauthUserInfo{}, errors.New("incomplete Google user info")
	}

	return oauthUserInfo{Subject: payload.ID, Email: payload.Email, Name: payload.Name}, nil
}

type appleTokenClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Nonce         string `json:"nonce"`
}

type appleJWK struct {
	Keys []appleJWKKey `json:"keys"`
}

type appleJWKKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type appleParsedClaims struct {
	Subject string
	Email   string
}

func parseAppleIDToken(ctx context.Context, idToken, clientID, nonce string) (appleParsedClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	claims := &appleTokenClaims{}

	parsedToken, err := parser.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing key id")
		}
		return fetchApplePublicKey(ctx, kid)
	})
	if err != nil || !parsedToken.Valid {
		return appleParsedClaims{}, errors.New("invalid Apple token")
	}

	if claims.Issuer != "https://appleid.apple.com" {
		return appleParsedClaims{}, errors.New("invalid Apple issuer")
	}
	if !audienceContains(claims.Audience, clientID) {
		return appleParsedClaims{}, errors.New("invalid Apple audience")
	}
	if nonce != "" && claims.Nonce != "" && claims.Nonce != nonce {
		return appleParsedClaims{}, errors.New("invalid Apple nonce")
	}
	if claims.Email == "" {
		return appleParsedClaims{}, errors.New("Apple email not available")
	}

	return appleParsedClaims{
		Subject: claims.Subject,
		Email:   claims.Email,
	}, nil
}

func audienceContains(audience jwt.ClaimStrings, value string) bool {
	for _, entry := range audience {
		if entry == value {
			return true
		}
	}
	return false
}

func fetchApplePublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://appleid.apple.com/auth/keys", nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("failed to fetch Apple public keys")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var jwk appleJWK
	if err := json.Unmarshal(body, &jwk); err != nil {
		return nil, err
	}

	for _, key := range jwk.Keys {
		if key.Kid != kid {
			continue
		}
		if key.Kty != "RSA" {
			return nil, errors.New("unexpected key type")
		}
		modulusBytes, err := base64.RawURLEncoding.DecodeString(key.N)
		if err != nil {
			return nil, err
		}
		exponentBytes, err := base64.RawURLEncoding.DecodeString(key.E)
		if err != nil {
			return nil, err
		}
		exponent := 0
		for _, b := range exponentBytes {
			exponent = exponent*256 + int(b)
		}
		return &rsa.PublicKey{
			N: new(big.Int).SetBytes(modulusBytes),
			E: exponent,
		}, nil
	}

	return nil, errors.New("Apple public key not found")
}
