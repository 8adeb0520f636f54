package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
	"github.com/trezcool/edunexus/core/user"
)

var appJWTConfig = middleware.JWTConfig{
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "userToken",
	Claims:        new(Claims),
}

// Claims represents the authorization claims transmitted via a JWT.
// Permissions are carried for the client's navigation only; they are not an
// authorization boundary.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64               `json:"oriat,omitempty"`
	Username     string              `json:"username,omitempty"`
	Name         string              `json:"name,omitempty"`
	Role         string              `json:"role,omitempty"`
	Permissions  *record.Permissions `json:"permissions,omitempty"`
}

func (c *Claims) IsAdmin() bool { return c.Role == record.RoleAdmin }

type authenticator struct {
	conf   *core.Config
	usrSvc *user.Service
}

func configureAuth(conf *core.Config, usrSvc *user.Service) *authenticator {
	appJWTConfig.SigningKey = conf.SecretKey
	return &authenticator{conf: conf, usrSvc: usrSvc}
}

func (a *authenticator) getUserClaims(usr record.User, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	oriat := nownix
	if len(origIat) > 0 {
		oriat = origIat[0]
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(a.conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Username:     usr.Username,
		Name:         usr.Name,
		Role:         usr.Role,
		Permissions:  usr.Permissions,
	}
}

func (a *authenticator) authenticate(creds user.Credentials) (*Claims, error) {
	usr, err := a.usrSvc.Authenticate(creds)
	if err != nil {
		if errors.Cause(err) == user.ErrAuthenticationFailed {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "authenticating")
	}
	return a.getUserClaims(usr), nil
}

// generateToken generates a signed JWT token string representing the user Claims.
func (a *authenticator) generateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

// refreshToken re-issues a token with the original issue time carried over,
// bounded by the refresh expiration delta.
func (a *authenticator) refreshToken(claims Claims) (string, error) {
	origIat := claims.OrigIssuedAt
	if origIat == 0 {
		origIat = claims.IssuedAt
	}
	if time.Now().After(time.Unix(origIat, 0).Add(a.conf.Server.JWTRefreshExpirationDelta)) {
		return "", errRefreshExpired
	}

	usr, err := a.usrSvc.Get(claims.Subject)
	if err != nil {
		return "", errUnauthorized
	}
	return a.generateToken(a.getUserClaims(usr, origIat))
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
