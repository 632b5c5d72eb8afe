package auth

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/praphull/authd/internal/cache"
	"github.com/praphull/authd/internal/digits"
	"github.com/praphull/authd/internal/store/memory"
)

const testConsumerKey = "digits-consumer-key"

// fakeVerifier cuenta llamadas y devuelve una respuesta fija.
type fakeVerifier struct {
	calls atomic.Int64
	acc   *digits.Account
	err   error
}

func (f *fakeVerifier) Verify(ctx context.Context, apiURL, credentials string) (*digits.Account, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.acc, nil
}

func validCredentials() string {
	return fmt.Sprintf(`OAuth oauth_consumer_key=%q, oauth_nonce="n", oauth_signature="s"`, testConsumerKey)
}

func newDigitsService(repo *memory.Repository, v digits.Verifier, c cache.Client) DigitsService {
	return NewDigitsService(DigitsDeps{
		Users:        repo,
		Verifier:     v,
		Codec:        testCodec(),
		Cache:        c,
		CacheTTL:     time.Minute,
		IssuanceKey:  testAuthKey,
		DefaultTZ:    "+05:30",
		ConsumerKey:  testConsumerKey,
		AllowedHosts: []string{"api.digits.com", "api.twitter.com"},
	})
}

func validInput() DigitsInput {
	return DigitsInput{
		Client:      "android",
		CTZOffset:   "330",
		Credentials: validCredentials(),
		ProviderURL: "https://api.digits.com/1.1/sdk/account.json",
	}
}

func TestLoginDigits_Success(t *testing.T) {
	t.Parallel()
	repo := memory.New()
	u := seedUser(t, repo)
	fv := &fakeVerifier{acc: &digits.Account{ID: 722224409, PhoneNumber: "+919999999999"}}
	svc := newDigitsService(repo, fv, nil)

	res, err := svc.LoginDigits(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, u.ID, res.UserID)
	require.EqualValues(t, 722224409, res.DigitsID)
	require.Equal(t, u.Email, res.Email)

	claims, err := testCodec().Verify(res.Token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UID)
}

func TestLoginDigits_MissingHeaders(t *testing.T) {
	t.Parallel()
	svc := newDigitsService(memory.New(), &fakeVerifier{}, nil)

	in := validInput()
	in.Credentials = ""
	in.ProviderURL = ""
	_, err := svc.LoginDigits(context.Background(), in)

	var mh *MissingHeadersError
	require.ErrorAs(t, err, &mh)
	require.ElementsMatch(t,
		[]string{HeaderCredentials, HeaderProvider}, mh.Headers)

	in = validInput()
	in.ProviderURL = ""
	_, err = svc.LoginDigits(context.Background(), in)
	require.ErrorAs(t, err, &mh)
	require.Equal(t, []string{HeaderProvider}, mh.Headers)
}

func TestLoginDigits_ForeignConsumerKey(t *testing.T) {
	t.Parallel()
	svc := newDigitsService(memory.New(), &fakeVerifier{}, nil)

	in := validInput()
	in.Credentials = `OAuth oauth_consumer_key="otra-app"`
	_, err := svc.LoginDigits(context.Background(), in)
	require.ErrorIs(t, err, ErrUntrustedProvider)
}

func TestLoginDigits_UntrustedHost(t *testing.T) {
	t.Parallel()
	fv := &fakeVerifier{acc: &digits.Account{ID: 1}}
	svc := newDigitsService(memory.New(), fv, nil)

	in := validInput()
	in.ProviderURL = "https://evil.example.com/1.1/sdk/account.json"
	_, err := svc.LoginDigits(context.Background(), in)
	require.ErrorIs(t, err, ErrUntrustedProvider)
	require.Zero(t, fv.calls.Load(), "nunca debe llamar a un host no confiable")
}

func TestLoginDigits_InvalidClient(t *testing.T) {
	t.Parallel()
	svc := newDigitsService(memory.New(), &fakeVerifier{}, nil)

	in := validInput()
	in.Client = "mocha"
	_, err := svc.LoginDigits(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidClientLogin)
}

func TestLoginDigits_ProviderFailure(t *testing.T) {
	t.Parallel()
	fv := &fakeVerifier{err: digits.ErrUnverified}
	svc := newDigitsService(memory.New(), fv, nil)

	_, err := svc.LoginDigits(context.Background(), validInput())
	require.ErrorIs(t, err, ErrProviderFailed)
}

func TestLoginDigits_NotLinked(t *testing.T) {
	t.Parallel()
	fv := &fakeVerifier{acc: &digits.Account{ID: 999, PhoneNumber: "+10000000000"}}
	svc := newDigitsService(memory.New(), fv, nil)

	_, err := svc.LoginDigits(context.Background(), validInput())
	require.ErrorIs(t, err, ErrNotLinked)
}

func TestLoginDigits_CacheAbsorbsRetries(t *testing.T) {
	t.Parallel()
	repo := memory.New()
	seedUser(t, repo)
	fv := &fakeVerifier{acc: &digits.Account{ID: 722224409, PhoneNumber: "+919999999999"}}
	svc := newDigitsService(repo, fv, cache.NewMemory("test", time.Minute))

	for i := 0; i < 3; i++ {
		_, err := svc.LoginDigits(context.Background(), validInput())
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, fv.calls.Load())
}

func TestLoginDigits_ZeroTTLDisablesCache(t *testing.T) {
	t.Parallel()
	repo := memory.New()
	seedUser(t, repo)
	fv := &fakeVerifier{acc: &digits.Account{ID: 722224409, PhoneNumber: "+919999999999"}}
	svc := NewDigitsService(DigitsDeps{
		Users:        repo,
		Verifier:     fv,
		Codec:        testCodec(),
		Cache:        cache.NewMemory("test", time.Minute),
		CacheTTL:     0,
		IssuanceKey:  testAuthKey,
		DefaultTZ:    "+05:30",
		ConsumerKey:  testConsumerKey,
		AllowedHosts: []string{"api.digits.com", "api.twitter.com"},
	})

	for i := 0; i < 3; i++ {
		_, err := svc.LoginDigits(context.Background(), validInput())
		require.NoError(t, err)
	}
	// Con TTL cero cada login vuelve al provider.
	require.EqualValues(t, 3, fv.calls.Load())
}
