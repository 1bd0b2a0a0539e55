package utils

import "testing"

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDecryptNote(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", testKey)

	plaintext := "private note with ñ and emoji 🌙"

	ciphertext, err := EncryptNote(plaintext)
	if err != nil {
		t.Fatalf("EncryptNote: %v", err)
	}
	if ciphertext == plaintext {
		t.Fatal("ciphertext must differ from plaintext")
	}

	got, err := DecryptNote(ciphertext)
	if err != nil {
		t.Fatalf("DecryptNote: %v", err)
	}
	if got != plaintext {
		t.Errorf("round trip = %q, want %q", got, plaintext)
	}
}

func TestEncryptNoteEmptyPassesThrough(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", testKey)

	ciphertext, err := EncryptNote("")
	if err != nil {
		t.Fatalf("EncryptNote(\"\"): %v", err)
	}
	if ciphertext != "" {
		t.Errorf("empty note should stay empty, got %q", ciphertext)
	}

	plain, err := DecryptNote("")
	if err != nil || plain != "" {
		t.Errorf("DecryptNote(\"\") = %q, %v; want \"\", nil", plain, err)
	}
}

func TestEncryptNoteRequiresKey(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "short")

	if _, err := EncryptNote("something"); err == nil {
		t.Error("expected error with a bad key")
	}
}

func TestDecryptNoteRejectsTampering(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", testKey)

	ciphertext, err := EncryptNote("original")
	if err != nil {
		t.Fatalf("EncryptNote: %v", err)
	}

	tampered := "A" + ciphertext[1:]
	if plain, err := DecryptNote(tampered); err == nil {
		t.Errorf("tampered ciphertext decrypted to %q, want error", plain)
	}
}
