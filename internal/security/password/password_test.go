package password

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	h, err := Hash("s3creto!")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	if !strings.HasPrefix(h, "$2") {
		t.Fatalf("not a bcrypt hash: %q", h)
	}
	if !Verify("s3creto!", h) {
		t.Fatal("Verify rejected the original password")
	}
	if Verify("otro", h) {
		t.Fatal("Verify accepted the wrong password")
	}
}

func TestHash_EmptyRejected(t *testing.T) {
	t.Parallel()
	if _, err := Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestHash_SaltedPerRecord(t *testing.T) {
	t.Parallel()
	h1, err := Hash("repetida")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Hash("repetida")
	if err != nil {
		t.Fatal(err)
	}
	// salt aleatorio por registro -> hashes distintos
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestVerify_GarbageHash(t *testing.T) {
	t.Parallel()
	if Verify("x", "no-es-un-hash") {
		t.Fatal("Verify accepted a malformed hash")
	}
}
