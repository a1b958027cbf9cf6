package crypto

import (
	"encoding/base64"
	"testing"
)

func TestAESGCMEncryptDecrypt(t *testing.T) {
	key := make([]byte, 32)
	b64 := base64.StdEncoding.EncodeToString(key)
	c, err := NewAESGCMFromBase64Key(b64)
	if err != nil {
		t.Fatalf("NewAESGCMFromBase64Key: %v", err)
	}
	plain := []byte("secret")
	blob, err := c.Encrypt(plain)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got, err := c.Decrypt(blob)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(got) != string(plain) {
		t.Fatalf("decrypt mismatch: got=%q want=%q", got, plain)
	}
}

func TestAESGCMBase64RoundTrip(t *testing.T) {
	key := make([]byte, 32)
	key[0] = 7
	c, err := NewAESGCMFromBase64Key(base64.StdEncoding.EncodeToString(key))
	if err != nil {
		t.Fatalf("NewAESGCMFromBase64Key: %v", err)
	}
	const blob = `{"server":"ftp.example.com","port":21}`
	enc, err := c.EncryptBase64(blob)
	if err != nil {
		t.Fatalf("EncryptBase64: %v", err)
	}
	if enc == blob {
		t.Fatalf("ciphertext equals plaintext")
	}
	got, err := c.DecryptBase64(enc)
	if err != nil {
		t.Fatalf("DecryptBase64: %v", err)
	}
	if got != blob {
		t.Fatalf("round trip mismatch: got=%q want=%q", got, blob)
	}
}

func TestAESGCMRejectsBadKey(t *testing.T) {
	if _, err := NewAESGCMFromBase64Key("not-base64!!"); err == nil {
		t.Fatalf("expected error for invalid base64 key")
	}
	short := base64.StdEncoding.EncodeToString(make([]byte, 16))
	if _, err := NewAESGCMFromBase64Key(short); err == nil {
		t.Fatalf("expected error for 16-byte key")
	}
}
