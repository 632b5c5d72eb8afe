// Package token firma y verifica los tokens de sesión del API.
//
// Los tokens son JWT HS256 autocontenidos: payload {client, ctz, uid?} más
// los claims registrados iss/aud/iat/exp. Un token sin uid es anónimo
// (skip login). La emisión está protegida por una clave de autorización:
// la clave de producción o la clave reservada "mocha" para tests.
package token

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Audiencias reconocidas por el API.
const (
	ClientAndroid = "android"
	// ClientMocha es la audiencia reservada para la clave de test.
	ClientMocha = "mocha"
)

// SupportedClient indica si la audiencia es una de las reconocidas.
func SupportedClient(client string) bool {
	return client == ClientAndroid || client == ClientMocha
}

// Errores del codec. Verify colapsa todos los motivos de rechazo en
// ErrInvalidToken para no permitir enumeración.
var (
	ErrInvalidKey    = errors.New("token: issuance key invalid")
	ErrTestKeyMisuse = errors.New("token: test key used by non-test client")
	ErrInvalidToken  = errors.New("token: invalid")
)

// Claims es el payload decodificado de un token verificado.
type Claims struct {
	Client string `json:"client"`
	CTZ    string `json:"ctz"`
	UID    string `json:"uid,omitempty"`
	jwtv5.RegisteredClaims
}

// Anonymous indica si el token no está ligado a una identidad.
func (c *Claims) Anonymous() bool { return c.UID == "" }

// Codec firma y verifica tokens con un secreto simétrico compartido.
// Es inmutable y seguro para uso concurrente.
type Codec struct {
	secret    []byte
	issuer    string
	authKey   string
	mochaKey  string
	authTTL   time.Duration
	unauthTTL time.Duration
	now       func() time.Time
}

// Config del codec; viene de la configuración estática del proceso.
type Config struct {
	Secret    string
	Issuer    string
	AuthKey   string // clave de autorización de emisión en producción
	MochaKey  string // clave reservada, solo audiencia "mocha"
	AuthTTL   time.Duration
	UnauthTTL time.Duration
}

// New crea un Codec.
func New(cfg Config) *Codec {
	return &Codec{
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		authKey:   cfg.AuthKey,
		mochaKey:  cfg.MochaKey,
		authTTL:   cfg.AuthTTL,
		unauthTTL: cfg.UnauthTTL,
		now:       time.Now,
	}
}

// checkIssuanceKey valida la clave de autorización de emisión.
// La clave mocha solo puede emitir para la audiencia mocha; cualquier otro
// uso se trata como intento de forjado.
func (c *Codec) checkIssuanceKey(key, client string) error {
	if key == "" || (key != c.authKey && (c.mochaKey == "" || key != c.mochaKey)) {
		return ErrInvalidKey
	}
	if c.mochaKey != "" && key == c.mochaKey && client != ClientMocha {
		return ErrTestKeyMisuse
	}
	return nil
}

// IssueAuthenticated emite un token ligado a un usuario (claim uid) con la
// validez de tokens autenticados.
func (c *Codec) IssueAuthenticated(client, uid, ctz, issuanceKey string) (string, error) {
	if err := c.checkIssuanceKey(issuanceKey, client); err != nil {
		return "", err
	}
	return c.sign(client, uid, ctz, c.authTTL)
}

// IssueUnauthenticated emite un token anónimo (sin uid) con la validez de
// tokens no autenticados.
func (c *Codec) IssueUnauthenticated(client, ctz, issuanceKey string) (string, error) {
	if err := c.checkIssuanceKey(issuanceKey, client); err != nil {
		return "", err
	}
	return c.sign(client, "", ctz, c.unauthTTL)
}

func (c *Codec) sign(client, uid, ctz string, ttl time.Duration) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		Client: client,
		CTZ:    ctz,
		UID:    uid,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwtv5.ClaimStrings{client},
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return tk.SignedString(c.secret)
}

// Verify valida firma, algoritmo, issuer y expiración, en ese orden lógico.
// Cualquier falla devuelve ErrInvalidToken sin distinguir el motivo; el
// caller debe validar aparte que claims.Client sea una audiencia soportada.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwtv5.ParseWithClaims(tokenString, claims,
		func(t *jwtv5.Token) (any, error) { return c.secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithIssuer(c.issuer),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
