package dao

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/database"
)

// profileDAO 用户资料数据访问实现
type profileDAO struct {
	db *database.PostgreSQL
}

// NewProfileDAO 创建资料DAO实例
func NewProfileDAO(db *database.PostgreSQL) ProfileDAO {
	return &profileDAO{
		db: db,
	}
}

// UpsertProfile 首次见到的用户写入资料行，已存在则不覆盖本地修改
func (d *profileDAO) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(profile).Error
}

// GetProfile 获取资料
func (d *profileDAO) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	var profile model.Profile
	err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfiles 批量获取资料，用于视图投影
func (d *profileDAO) GetProfiles(ctx context.Context, userIDs []int64) ([]*model.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var profiles []*model.Profile
	err := d.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error
	return profiles, err
}

// UpdateProfile 用户更新自己的展示信息
func (d *profileDAO) UpdateProfile(ctx context.Context, userID int64, displayName, avatarURL string) error {
	updates := map[string]interface{}{}
	if displayName != "" {
		updates["display_name"] = displayName
	}
	if avatarURL != "" {
		updates["avatar_url"] = avatarURL
	}
	if len(updates) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRole 管理员变更用户角色
func (d *profileDAO) UpdateRole(ctx context.Context, userID int64, role string) error {
	result := d.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
