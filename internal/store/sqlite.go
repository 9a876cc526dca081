package store

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crecokenya/truthguard/internal/model"
)

// SQLiteStore persists collections in a local SQLite database. PutClaims
// keeps the engine's whole-collection-replace contract: each call rewrites
// the claims table inside one transaction, preserving slice order via the
// position column.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (creating if needed) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite store %s", path)
	}

	if err := db.AutoMigrate(&claimRow{}, &notificationRow{}, &profileRow{}); err != nil {
		return nil, errors.Wrap(err, "migrate sqlite store")
	}

	return &SQLiteStore{db: db}, nil
}

// ListClaims returns all claims in stored order
func (s *SQLiteStore) ListClaims() ([]model.Claim, error) {
	var rows []claimRow
	if err := s.db.Order("position").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list claims")
	}

	claims := make([]model.Claim, len(rows))
	for i, row := range rows {
		claims[i] = row.toClaim()
	}
	return claims, nil
}

// PutClaims replaces the whole claim collection transactionally
func (s *SQLiteStore) PutClaims(claims []model.Claim) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&claimRow{}).Error; err != nil {
			return err
		}
		if len(claims) == 0 {
			return nil
		}

		rows := make([]claimRow, len(claims))
		for i, c := range claims {
			rows[i] = newClaimRow(c, i)
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errors.Wrap(err, "put claims")
	}
	return nil
}

// GetClaim returns the claim with the given id, or ErrNotFound
func (s *SQLiteStore) GetClaim(id string) (*model.Claim, error) {
	var row claimRow
	err := s.db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("claim %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get claim %s", id)
	}

	claim := row.toClaim()
	return &claim, nil
}

// DeleteClaim removes the claim with the given id, or returns ErrNotFound
func (s *SQLiteStore) DeleteClaim(id string) error {
	res := s.db.Where("id = ?", id).Delete(&claimRow{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete claim %s", id)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("claim %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListNotifications returns notifications newest first, filtered to the
// given user unless userID is empty
func (s *SQLiteStore) ListNotifications(userID string) ([]model.Notification, error) {
	q := s.db.Order("created_at desc")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var rows []notificationRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list notifications")
	}

	notifications := make([]model.Notification, len(rows))
	for i, row := range rows {
		notifications[i] = row.toNotification()
	}
	return notifications, nil
}

// AppendNotification stores a new notification
func (s *SQLiteStore) AppendNotification(n model.Notification) error {
	row := newNotificationRow(n)
	if err := s.db.Create(&row).Error; err != nil {
		return errors.Wrapf(err, "append notification %s", n.ID)
	}
	return nil
}

// MarkNotificationRead marks a single notification read
func (s *SQLiteStore) MarkNotificationRead(id string) error {
	res := s.db.Model(&notificationRow{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "mark notification %s read", id)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListUserProfiles returns all user profiles
func (s *SQLiteStore) ListUserProfiles() ([]model.UserProfile, error) {
	var rows []profileRow
	if err := s.db.Order("position").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list user profiles")
	}

	profiles := make([]model.UserProfile, len(rows))
	for i, row := range rows {
		profiles[i] = row.toProfile()
	}
	return profiles, nil
}

// PutUserProfiles replaces the whole profile collection transactionally
func (s *SQLiteStore) PutUserProfiles(profiles []model.UserProfile) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&profileRow{}).Error; err != nil {
			return err
		}
		if len(profiles) == 0 {
			return nil
		}

		rows := make([]profileRow, len(profiles))
		for i, p := range profiles {
			rows[i] = newProfileRow(p, i)
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errors.Wrap(err, "put user profiles")
	}
	return nil
}

// Close closes the underlying database connection
func (s *SQLiteStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "close sqlite store")
	}
	return db.Close()
}

// claimRow is the claims table schema
type claimRow struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Position    int       `gorm:"column:position;index"`
	Content     string    `gorm:"column:content"`
	Status      string    `gorm:"column:status"`
	Category    string    `gorm:"column:category"`
	SubmittedBy string    `gorm:"column:submitted_by"`
	SubmittedAt time.Time `gorm:"column:submitted_at"`
	VerifiedBy  string    `gorm:"column:verified_by"`
	Priority    string    `gorm:"column:priority"`

	Verdict     string     `gorm:"column:verdict"`
	Explanation string     `gorm:"column:explanation"`
	References  StringList `gorm:"column:refs;type:text"`
	Tags        StringList `gorm:"column:tags;type:text"`

	Approved          bool `gorm:"column:approved"`
	AIAnalyzed        bool `gorm:"column:ai_analyzed"`
	AIPendingApproval bool `gorm:"column:ai_pending_approval"`
	PublishedToFeed   bool `gorm:"column:published_to_feed"`

	DuplicateOf    string `gorm:"column:duplicate_of"`
	DuplicateCount int    `gorm:"column:duplicate_count"`

	Views        int        `gorm:"column:views"`
	Likes        int        `gorm:"column:likes"`
	Shares       int        `gorm:"column:shares"`
	Trending     bool       `gorm:"column:trending"`
	BookmarkedBy StringList `gorm:"column:bookmarked_by;type:text"`
}

// TableName names the claims table
func (claimRow) TableName() string {
	return "claims"
}

func newClaimRow(c model.Claim, position int) claimRow {
	return claimRow{
		ID:                c.ID,
		Position:          position,
		Content:           c.Content,
		Status:            string(c.Status),
		Category:          string(c.Category),
		SubmittedBy:       c.SubmittedBy,
		SubmittedAt:       c.SubmittedAt,
		VerifiedBy:        c.VerifiedBy,
		Priority:          string(c.Priority),
		Verdict:           c.Verdict,
		Explanation:       c.Explanation,
		References:        StringList(c.References),
		Tags:              StringList(c.Tags),
		Approved:          c.Approved,
		AIAnalyzed:        c.AIAnalyzed,
		AIPendingApproval: c.AIPendingApproval,
		PublishedToFeed:   c.PublishedToFeed,
		DuplicateOf:       c.DuplicateOf,
		DuplicateCount:    c.DuplicateCount,
		Views:             c.Views,
		Likes:             c.Likes,
		Shares:            c.Shares,
		Trending:          c.Trending,
		BookmarkedBy:      StringList(c.BookmarkedBy),
	}
}

func (r claimRow) toClaim() model.Claim {
	return model.Claim{
		ID:                r.ID,
		Content:           r.Content,
		Status:            model.ClaimStatus(r.Status),
		Category:          model.ClaimCategory(r.Category),
		SubmittedBy:       r.SubmittedBy,
		SubmittedAt:       r.SubmittedAt,
		VerifiedBy:        r.VerifiedBy,
		Priority:          model.ClaimPriority(r.Priority),
		Verdict:           r.Verdict,
		Explanation:       r.Explanation,
		References:        []string(r.References),
		Tags:              []string(r.Tags),
		Approved:          r.Approved,
		AIAnalyzed:        r.AIAnalyzed,
		AIPendingApproval: r.AIPendingApproval,
		PublishedToFeed:   r.PublishedToFeed,
		DuplicateOf:       r.DuplicateOf,
		DuplicateCount:    r.DuplicateCount,
		Views:             r.Views,
		Likes:             r.Likes,
		Shares:            r.Shares,
		Trending:          r.Trending,
		BookmarkedBy:      []string(r.BookmarkedBy),
	}
}

// notificationRow is the notifications table schema
type notificationRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;index"`
	ClaimID   string    `gorm:"column:claim_id;index"`
	Type      string    `gorm:"column:type"`
	Title     string    `gorm:"column:title"`
	Message   string    `gorm:"column:message"`
	Read      bool      `gorm:"column:read"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

// TableName names the notifications table
func (notificationRow) TableName() string {
	return "notifications"
}

func newNotificationRow(n model.Notification) notificationRow {
	return notificationRow{
		ID:        n.ID,
		UserID:    n.UserID,
		ClaimID:   n.ClaimID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (r notificationRow) toNotification() model.Notification {
	return model.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		ClaimID:   r.ClaimID,
		Type:      model.NotificationType(r.Type),
		Title:     r.Title,
		Message:   r.Message,
		Read:      r.Read,
		CreatedAt: r.CreatedAt,
	}
}

// profileRow is the user_profiles table schema
type profileRow struct {
	ID              string     `gorm:"column:id;primaryKey"`
	Position        int        `gorm:"column:position;index"`
	Name            string     `gorm:"column:name"`
	Email           string     `gorm:"column:email"`
	Role            string     `gorm:"column:role"`
	Points          int        `gorm:"column:points"`
	Badges          StringList `gorm:"column:badges;type:text"`
	ClaimsSubmitted int        `gorm:"column:claims_submitted"`
	ClaimsVerified  int        `gorm:"column:claims_verified"`
	JoinedAt        time.Time  `gorm:"column:joined_at"`
}

// TableName names the user_profiles table
func (profileRow) TableName() string {
	return "user_profiles"
}

func newProfileRow(p model.UserProfile, position int) profileRow {
	return profileRow{
		ID:              p.ID,
		Position:        position,
		Name:            p.Name,
		Email:           p.Email,
		Role:            string(p.Role),
		Points:          p.Points,
		Badges:          StringList(p.Badges),
		ClaimsSubmitted: p.ClaimsSubmitted,
		ClaimsVerified:  p.ClaimsVerified,
		JoinedAt:        p.JoinedAt,
	}
}

func (r profileRow) toProfile() model.UserProfile {
	return model.UserProfile{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		Role:            model.UserRole(r.Role),
		Points:          r.Points,
		Badges:          []string(r.Badges),
		ClaimsSubmitted: r.ClaimsSubmitted,
		ClaimsVerified:  r.ClaimsVerified,
		JoinedAt:        r.JoinedAt,
	}
}
