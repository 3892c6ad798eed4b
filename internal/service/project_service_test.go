package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/storage"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const testBaseURL = "http://localhost:3000"

func newProjectService(t *testing.T, repo *projectRepoMock) (*ProjectService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	svc := NewProjectService(ProjectDependencies{
		ProjectRepo: repo,
		Store:       store,
		MaxUpload:   1024,
		Now:         func() time.Time { return time.UnixMilli(1700000000000) },
	})
	return svc, dir
}

func pngUpload(body string) *storage.Upload {
	return &storage.Upload{Filename: "shot.png", Size: int64(len(body)), Reader: strings.NewReader(body)}
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestCreateProjectDefaults(t *testing.T) {
	repo := &projectRepoMock{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).Return(nil)
	svc, _ := newProjectService(t, repo)

	techs := apperrors.ParseListText("React, Node.js", apperrors.SeparatorComma)
	project, err := svc.Create(context.Background(), ProjectInput{
		Name:         strPtr("Mi  Tienda Online"),
		Description:  strPtr("E-commerce"),
		Technologies: &techs,
		PreviewURL:   strPtr(""),
	}, nil, testBaseURL)
	require.NoError(t, err)

	assert.Equal(t, []string{"React", "Node.js"}, project.Technologies)
	assert.Equal(t, DefaultProjectImage, project.Image)
	assert.Equal(t, "/projects/mi-tienda-online", project.DetailsURL)
	assert.Nil(t, project.PreviewURL)
}

func TestCreateProjectValidation(t *testing.T) {
	svc, _ := newProjectService(t, &projectRepoMock{})

	_, err := svc.Create(context.Background(), ProjectInput{
		Name:         strPtr("X"),
		Technologies: listPtr(" ", ""),
		PreviewURL:   strPtr("not a url"),
	}, nil, testBaseURL)
	derr := apperrors.ToDomainError(err)
	require.Equal(t, apperrors.CodeValidation, derr.Code)
	assert.Equal(t, "description is required", derr.Details["description"])
	assert.Equal(t, "technologies is required", derr.Details["technologies"])
}

func TestCreateProjectRejectsBadPreviewURL(t *testing.T) {
	svc, _ := newProjectService(t, &projectRepoMock{})

	_, err := svc.Create(context.Background(), ProjectInput{
		Name:         strPtr("X"),
		Description:  strPtr("Y"),
		Technologies: listPtr("Go"),
		PreviewURL:   strPtr("not a url"),
	}, nil, testBaseURL)
	derr := apperrors.ToDomainError(err)
	require.Equal(t, apperrors.CodeValidation, derr.Code)
	assert.Equal(t, "previewUrl must be a valid URL", derr.Details["previewUrl"])
}

func TestCreateProjectStoresCover(t *testing.T) {
	repo := &projectRepoMock{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	svc, dir := newProjectService(t, repo)

	project, err := svc.Create(context.Background(), ProjectInput{
		Name:         strPtr("X"),
		Description:  strPtr("Y"),
		Technologies: listPtr("Go"),
		Image:        strPtr("https://example.com/ignored.png"),
	}, pngUpload("png"), testBaseURL)
	require.NoError(t, err)

	files := storedFiles(t, dir)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0], "cover-1700000000000-"))
	assert.Equal(t, testBaseURL+"/uploads/"+files[0], project.Image)
}

func TestCreateProjectRemovesCoverWhenInsertFails(t *testing.T) {
	repo := &projectRepoMock{}
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	svc, dir := newProjectService(t, repo)

	_, err := svc.Create(context.Background(), ProjectInput{
		Name:         strPtr("X"),
		Description:  strPtr("Y"),
		Technologies: listPtr("Go"),
	}, pngUpload("png"), testBaseURL)
	assert.Equal(t, 500, apperrors.ToDomainError(err).HTTPStatus)
	assert.Empty(t, storedFiles(t, dir))
}

func TestCreateProjectRejectsUnsupportedCover(t *testing.T) {
	repo := &projectRepoMock{}
	svc, dir := newProjectService(t, repo)

	for _, upload := range []*storage.Upload{
		{Filename: "shot.gif", Size: 3, Reader: strings.NewReader("gif")},
		{Filename: "shot.png", Size: 2048, Reader: strings.NewReader("big")},
	} {
		_, err := svc.Create(context.Background(), ProjectInput{
			Name:         strPtr("X"),
			Description:  strPtr("Y"),
			Technologies: listPtr("Go"),
		}, upload, testBaseURL)
		derr := apperrors.ToDomainError(err)
		assert.Equal(t, apperrors.CodeValidation, derr.Code)
		assert.Contains(t, derr.Details, "coverImage")
	}
	assert.Empty(t, storedFiles(t, dir))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateProjectReplacesStoredCover(t *testing.T) {
	repo := &projectRepoMock{}
	svc, dir := newProjectService(t, repo)

	old := "cover-1-old.png"
	require.NoError(t, os.WriteFile(filepath.Join(dir, old), []byte("old"), 0o644))
	stored := &domain.Project{ID: 2, Name: "X", Image: testBaseURL + "/uploads/" + old, DetailsURL: "/projects/x"}
	repo.On("GetByID", mock.Anything, int64(2)).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(nil)

	project, err := svc.Update(context.Background(), 2, ProjectInput{Description: strPtr("new")}, pngUpload("new"), testBaseURL)
	require.NoError(t, err)

	files := storedFiles(t, dir)
	require.Len(t, files, 1)
	assert.NotEqual(t, old, files[0])
	assert.Equal(t, testBaseURL+"/uploads/"+files[0], project.Image)
	assert.Equal(t, "new", project.Description)
	assert.Equal(t, "/projects/x", project.DetailsURL)
}

func TestUpdateProjectKeepsExternalImageFile(t *testing.T) {
	repo := &projectRepoMock{}
	svc, _ := newProjectService(t, repo)

	stored := &domain.Project{ID: 2, Name: "X", Image: DefaultProjectImage, PreviewURL: strPtr("https://x.dev")}
	repo.On("GetByID", mock.Anything, int64(2)).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(nil)

	project, err := svc.Update(context.Background(), 2, ProjectInput{PreviewURL: strPtr(" ")}, nil, testBaseURL)
	require.NoError(t, err)
	assert.Nil(t, project.PreviewURL)
	assert.Equal(t, DefaultProjectImage, project.Image)
}

func TestUpdateProjectMissingWritesNoFile(t *testing.T) {
	repo := &projectRepoMock{}
	repo.On("GetByID", mock.Anything, int64(8)).Return(nil, pgx.ErrNoRows)
	svc, dir := newProjectService(t, repo)

	_, err := svc.Update(context.Background(), 8, ProjectInput{}, pngUpload("png"), testBaseURL)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
	assert.Empty(t, storedFiles(t, dir))
}

func TestDeleteProjectRemovesCover(t *testing.T) {
	repo := &projectRepoMock{}
	svc, dir := newProjectService(t, repo)

	name := "cover-2-abc.jpg"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("jpg"), 0o644))
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Project{ID: 3, Image: testBaseURL + "/uploads/" + name}, nil)
	repo.On("Delete", mock.Anything, int64(3)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Empty(t, storedFiles(t, dir))
}
