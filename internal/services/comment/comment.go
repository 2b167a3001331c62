// Package services содержит бизнес-логику комментариев к песням.
package services

import (
	"context"
	"log/slog"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/models"
)

// CommentRepository определяет методы для работы с комментариями в
// хранилище.
type CommentRepository interface {
	// CreateComment добавляет комментарий или ответ и возвращает его ID.
	CreateComment(ctx context.Context, songID, consumerID int64, content string, parentID *int64) (int64, error)
	// ListTopLevelComments возвращает идентификаторы начал тредов песни.
	ListTopLevelComments(ctx context.Context, songID int64) ([]int64, error)
	// GetCommentInfo возвращает карточку комментария или nil, если его нет.
	GetCommentInfo(ctx context.Context, commentID int64) (*models.CommentInfo, error)
	// DeleteCommentThread удаляет тред; authorID == nil снимает проверку авторства.
	DeleteCommentThread(ctx context.Context, commentID int64, authorID *int64) error
}

// CommentService реализует операции над комментариями.
type CommentService struct {
	repo CommentRepository
	log  *slog.Logger
}

// NewCommentService создает новый экземпляр CommentService.
func NewCommentService(repo CommentRepository, log *slog.Logger) *CommentService {
	return &CommentService{repo: repo, log: log}
}

// AddComment начинает тред под песней.
func (s *CommentService) AddComment(ctx context.Context, songID, consumerID int64, content string) (int64, error) {
	id, err := s.repo.CreateComment(ctx, songID, consumerID, content, nil)
	if err != nil {
		return 0, err
	}
	s.log.Info("added comment",
		slog.Int64("comment_id", id), slog.Int64("song_id", songID))
	return id, nil
}

// ReplyToComment добавляет ответ в существующий тред той же песни.
func (s *CommentService) ReplyToComment(ctx context.Context, songID, parentID, consumerID int64, content string) (int64, error) {
	id, err := s.repo.CreateComment(ctx, songID, consumerID, content, &parentID)
	if err != nil {
		return 0, err
	}
	s.log.Info("added reply",
		slog.Int64("comment_id", id), slog.Int64("parent_id", parentID))
	return id, nil
}

// ListComments возвращает идентификаторы начал тредов песни.
func (s *CommentService) ListComments(ctx context.Context, songID int64) ([]int64, error) {
	return s.repo.ListTopLevelComments(ctx, songID)
}

// CommentInfo возвращает карточку комментария с ответами.
func (s *CommentService) CommentInfo(ctx context.Context, commentID int64) (*models.CommentInfo, error) {
	info, err := s.repo.GetCommentInfo(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperr.Newf(apperr.NotFound, "no comment found with ID %d", commentID)
	}
	return info, nil
}

// DeleteComment удаляет тред. Потребитель удаляет только собственные
// треды, администратор — любые.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, callerID int64, role models.Role) error {
	var authorID *int64
	if role != models.RoleAdministrator {
		authorID = &callerID
	}
	if err := s.repo.DeleteCommentThread(ctx, commentID, authorID); err != nil {
		return err
	}
	s.log.Info("deleted comment thread",
		slog.Int64("comment_id", commentID), slog.Int64("caller_id", callerID))
	return nil
}
