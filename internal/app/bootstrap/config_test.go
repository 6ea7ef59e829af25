package bootstrap

import (
	"testing"

	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "cartelera",
		SessionKey:    "0123456789abcdef0123456789abcdef",
		TeacherCode:   "INELI2026",
	}
}

func TestValidateConfigAccepts(t *testing.T) {
	if err := ValidateConfig(nil, validAppConfig(), zap.NewNop()); err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
}

func TestValidateConfigRejectsBadMongoURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "not-a-uri"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Fatal("bad mongo URI accepted")
	}
}

func TestValidateConfigRejectsEmptyTeacherCode(t *testing.T) {
	cfg := validAppConfig()
	cfg.TeacherCode = ""
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Fatal("empty teacher code accepted")
	}
}

func TestValidateConfigRejectsHalfMediaConfig(t *testing.T) {
	cfg := validAppConfig()
	cfg.MediaUploadURL = "https://api.cloudinary.com/v1_1/demo/image/upload"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Fatal("upload URL without preset accepted")
	}

	cfg = validAppConfig()
	cfg.MediaUploadPreset = "fotos"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Fatal("preset without upload URL accepted")
	}
}
