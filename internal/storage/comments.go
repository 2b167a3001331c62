package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/models"
)

// CreateComment добавляет комментарий к песне. Для ответа parentID
// указывает начало треда и обязан существовать у той же песни.
func (s *Storage) CreateComment(ctx context.Context, songID, consumerID int64, content string, parentID *int64) (int64, error) {
	const op = "storage.CreateComment"

	var (
		id  int64
		err error
	)
	if parentID == nil {
		err = s.DB.QueryRowContext(ctx,
			`INSERT INTO comments (content, post_time, comments_id, songs_id, consumers_users_id)
             VALUES ($1, CURRENT_TIMESTAMP, NULL, $2, $3)
             RETURNING id`,
			content, songID, consumerID).Scan(&id)
	} else {
		err = s.DB.QueryRowContext(ctx,
			`INSERT INTO comments (content, post_time, comments_id, songs_id, consumers_users_id)
             SELECT $1, CURRENT_TIMESTAMP, $2, $3, $4
             WHERE EXISTS (SELECT 1 FROM comments WHERE id = $2 AND songs_id = $3)
             RETURNING id`,
			content, *parentID, songID, consumerID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.Newf(apperr.InvalidInput,
				"no parent comment with ID %d found for song with ID %d", *parentID, songID)
		}
	}
	if err != nil {
		err = classify(err,
			"duplicate comment entry",
			fmt.Sprintf("no song with ID %d found", songID))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListTopLevelComments возвращает идентификаторы начал тредов песни.
func (s *Storage) ListTopLevelComments(ctx context.Context, songID int64) ([]int64, error) {
	const op = "storage.ListTopLevelComments"

	query := `SELECT id
              FROM comments
              WHERE songs_id = $1 AND comments_id IS NULL
              ORDER BY id ASC`

	rows, err := s.DB.QueryContext(ctx, query, songID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCommentInfo возвращает карточку комментария с идентификаторами
// ответов. Возвращает nil, если комментария нет.
func (s *Storage) GetCommentInfo(ctx context.Context, commentID int64) (*models.CommentInfo, error) {
	const op = "storage.GetCommentInfo"

	query := `SELECT comments.content, comments.post_time, consumers.display_name, replies.id
              FROM comments
              LEFT JOIN consumers ON comments.consumers_users_id = consumers.users_id
              LEFT JOIN comments AS replies ON comments.id = replies.comments_id
              WHERE comments.id = $1
              ORDER BY replies.id ASC`

	rows, err := s.DB.QueryContext(ctx, query, commentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var info *models.CommentInfo
	for rows.Next() {
		var (
			content  string
			postTime sql.NullTime
			author   sql.NullString
			replyID  sql.NullInt64
		)
		if err := rows.Scan(&content, &postTime, &author, &replyID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if info == nil {
			info = &models.CommentInfo{
				Content:  content,
				PostTime: postTime.Time,
				Author:   author.String,
			}
		}
		if replyID.Valid {
			info.Replies = append(info.Replies, replyID.Int64)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}

// DeleteCommentThread удаляет тред начиная с комментария. Потребитель
// может удалять только собственные треды, администратор — любые
// (authorID == nil). Ответы каскадируются на уровне схемы.
func (s *Storage) DeleteCommentThread(ctx context.Context, commentID int64, authorID *int64) error {
	const op = "storage.DeleteCommentThread"

	var (
		id  int64
		err error
	)
	if authorID == nil {
		err = s.DB.QueryRowContext(ctx,
			`DELETE FROM comments WHERE id = $1 RETURNING id`,
			commentID).Scan(&id)
	} else {
		err = s.DB.QueryRowContext(ctx,
			`DELETE FROM comments WHERE id = $1 AND consumers_users_id = $2 RETURNING id`,
			commentID, *authorID).Scan(&id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Newf(apperr.NotFound,
			"no comment found with ID %d", commentID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
