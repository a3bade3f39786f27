package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// GDriveService stores trip and profile photos in a Google Drive
// folder and hands back a public direct-download URL.
type GDriveService struct {
	service  *drive.Service
	folderID string
}

// NewGDriveService creates a new Google Drive service using OAuth2 credentials
// credentialsPath: path to OAuth2 client credentials JSON (from Google Cloud Console)
// tokenPath: path to the saved OAuth2 token JSON
// folderID: the Google Drive folder ID to upload photos to
func NewGDriveService(credentialsPath, tokenPath, folderID string) (*GDriveService, error) {
	ctx := context.Background()

	credBytes, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(credBytes, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	token, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	// Token source refreshes automatically; persist the refreshed
	// token so restarts don't need re-authorization.
	tokenSource := config.TokenSource(ctx, token)
	newToken, err := tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	if newToken.AccessToken != token.AccessToken {
		if err := saveToken(tokenPath, newToken); err != nil {
			log.Printf("Warning: failed to save refreshed token: %v", err)
		}
	}

	service, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &GDriveService{
		service:  service,
		folderID: folderID,
	}, nil
}

// UploadPhoto uploads a photo and returns its public URL. It
// satisfies the service layer's PhotoUploader interface.
func (g *GDriveService) UploadPhoto(ctx context.Context, filename string, content io.Reader) (string, error) {
	driveFile := &drive.File{
		Name:    path.Base(filename),
		Parents: []string{g.folderID},
	}

	createdFile, err := g.service.Files.Create(driveFile).
		Media(content).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	permission := &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}
	if _, err := g.service.Permissions.Create(createdFile.Id, permission).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to set photo permissions: %w", err)
	}

	return fmt.Sprintf("https://drive.google.com/uc?id=%s", createdFile.Id), nil
}

// DeletePhoto removes a stored photo by its Drive file ID.
func (g *GDriveService) DeletePhoto(ctx context.Context, fileID string) error {
	if err := g.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

// tokenFromFile reads a token from a file
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// saveToken saves a token to a file
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
