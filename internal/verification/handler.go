package verification

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fairclaim/portal-backend/internal/auth"
)

const maxUploadBytes = 10 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".pdf": true,
}

// Verifier is the document pipeline as seen by the HTTP layer
type Verifier interface {
	VerifyDocument(ctx context.Context, path string, docType DocumentType, claim ClaimedIdentity) *VerificationVerdict
}

// Profile supplies the claimed identity stored on the user profile
type Profile struct {
	Email         string
	FullName      string
	AadhaarNumber string
	Address       string
}

type ProfileDirectory interface {
	Profile(ctx context.Context, userID uuid.UUID) (Profile, error)
}

type Handler struct {
	verifier  Verifier
	profiles  ProfileDirectory
	uploadDir string
	logger    *zap.Logger
}

func NewHandler(verifier Verifier, profiles ProfileDirectory, uploadDir string, logger *zap.Logger) *Handler {
	return &Handler{
		verifier:  verifier,
		profiles:  profiles,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	v := rg.Group("/verify")
	{
		v.POST("/verify-document", h.VerifyDocument)
		v.GET("/supported-documents", h.SupportedDocuments)
	}
}

func (h *Handler) VerifyDocument(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	docType := DocumentType(c.PostForm("document_type"))
	switch docType {
	case DocumentAadhaar, DocumentCasteCertificate, DocumentIncomeCertificate, DocumentFIRCopy:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown document_type"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type, allowed: .jpg, .jpeg, .png, .pdf"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large, maximum size: 10 MB"})
		return
	}

	profile, err := h.profiles.Profile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	if docType == DocumentAadhaar && profile.AadhaarNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "please update your aadhaar number in profile before verification",
		})
		return
	}

	fileID := uuid.New()
	path := filepath.Join(h.uploadDir, fmt.Sprintf("%s%s", fileID, ext))
	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	claim := ClaimedIdentity{
		Identifier: profile.AadhaarNumber,
		FullName:   profile.FullName,
		RegionHint: profile.Address,
	}

	verdict := h.verifier.VerifyDocument(c.Request.Context(), path, docType, claim)

	if verdict.SecurityAlert {
		h.logger.Warn("security alert on document verification",
			zap.String("user_id", userID.String()),
			zap.String("email", profile.Email),
			zap.String("document_type", string(docType)),
			zap.String("reason", verdict.Reason))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"filename":            file.Filename,
		"document_type":       docType,
		"file_id":             fileID.String(),
		"verification_result": verdict,
		"uploaded_by":         profile.Email,
		"user_name":           profile.FullName,
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) SupportedDocuments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"supported_documents": []gin.H{
			{
				"type":                 DocumentAadhaar,
				"name":                 "Aadhaar Card",
				"verification_methods": []string{"QR Code Validation", "OCR Fallback"},
				"confidence":           "High (95%) with QR, Medium (65%) with OCR",
				"requirements":         "Clear image with QR code visible",
				"security":             "Cross-verified with user profile",
			},
			{
				"type":                 DocumentCasteCertificate,
				"name":                 "Caste Certificate",
				"verification_methods": []string{"QR Code", "Multilingual OCR", "Registry Lookup"},
				"confidence":           "Medium (75%)",
				"requirements":         "Government-issued certificate with clear text",
			},
			{
				"type":                 DocumentIncomeCertificate,
				"name":                 "Income Certificate",
				"verification_methods": []string{"OCR", "Keyword Matching"},
				"confidence":           "Medium (60%)",
				"requirements":         "Clear readable text",
			},
			{
				"type":                 DocumentFIRCopy,
				"name":                 "FIR Copy",
				"verification_methods": []string{"OCR", "Keyword Matching"},
				"confidence":           "Medium (60%)",
				"requirements":         "Official police station copy",
			},
		},
		"supported_languages": []string{
			"English", "Hindi", "Tamil", "Telugu", "Marathi",
			"Bengali", "Kannada", "Malayalam", "Gujarati", "Punjabi",
		},
		"note": "QR code verification provides highest confidence. OCR is the fallback method.",
		"security_features": []string{
			"User-document cross-verification",
			"Aadhaar number matching",
			"Name fuzzy matching",
			"Security alerts for mismatches",
			"Complete audit trail",
		},
	})
}
