package services

import (
	"os"
	"testing"

	"main/utils"
)

func init() {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-123")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("user id = %q", userID)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	if _, err := ParseJWT("not.a.token"); err == nil {
		t.Error("garbage token parsed without error")
	}
}

func TestParseJWTRejectsWrongKey(t *testing.T) {
	token, err := GenerateJWT("user-123")
	if err != nil {
		t.Fatal(err)
	}

	original := utils.JWTSecretKey
	utils.JWTSecretKey = "a-different-secret"
	defer func() { utils.JWTSecretKey = original }()

	if _, err := ParseJWT(token); err == nil {
		t.Error("token signed with another key was accepted")
	}
}
