package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexsergivan/transliterator"
	"gorm.io/gorm"

	"github.com/tutorlog/tutorlog/internal/models"
)

var translit = transliterator.NewTransliterator(nil)

// MakeGroupSlug derives an ascii url slug from a (possibly non-latin) group name.
func MakeGroupSlug(name string) string {
	ascii := strings.ToLower(translit.Transliterate(name, "en"))
	var b strings.Builder
	lastDash := true
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (db *DataBase) AddGroup(group *models.Group) (*models.Group, error) {
	if group.Slug == "" {
		group.Slug = MakeGroupSlug(group.Name)
	}
	err := db.Create(group).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}
	return group, nil
}

func (db *DataBase) FindGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	err := db.First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (db *DataBase) FindGroupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := db.First(&group, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (db *DataBase) ListGroups(owner uint, skip, limit int) (groups []models.Group, err error) {
	groups = make([]models.Group, 0)
	err = db.Where("owner_id = ?", owner).Offset(skip).Limit(limit).Order("id").Find(&groups).Error
	if err != nil {
		groups = nil
	}
	return
}

func (db *DataBase) SearchGroupsByName(owner uint, name string) (groups []models.Group, err error) {
	groups = make([]models.Group, 0)
	err = db.Where("owner_id = ? AND name ILIKE ?", owner, "%"+name+"%").Order("id").Find(&groups).Error
	if err != nil {
		groups = nil
	}
	return
}

func (db *DataBase) UpdateGroup(id uint, updates map[string]interface{}) (*models.Group, error) {
	if name, ok := updates["name"]; ok {
		updates["slug"] = MakeGroupSlug(name.(string))
	}
	res := db.Model(&models.Group{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, &DuplicateKey{res.Error}
		}
		return nil, res.Error
	}
	if res.RowsAffected < 1 {
		return nil, fmt.Errorf("unknown group %d: %w", id, gorm.ErrRecordNotFound)
	}
	return db.FindGroupByID(id)
}

func (db *DataBase) DeleteGroup(id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected < 1 {
			return fmt.Errorf("unknown group %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

func (db *DataBase) AddGroupMembers(groupID uint, pupilIDs []uint) ([]models.GroupMember, error) {
	var existing []models.GroupMember
	err := db.Find(&existing, "group_id = ? AND pupil_id IN ?", groupID, pupilIDs).Error
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		ids := make([]uint, 0, len(existing))
		for _, m := range existing {
			ids = append(ids, m.PupilID)
		}
		return nil, &DuplicateKey{fmt.Errorf("pupils %v are already members of group %d", ids, groupID)}
	}

	members := make([]models.GroupMember, 0, len(pupilIDs))
	for _, pupil := range pupilIDs {
		members = append(members, models.GroupMember{GroupID: groupID, PupilID: pupil, JoinedAt: time.Now()})
	}
	err = db.Create(&members).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}
	return members, nil
}

// ReconcileGroupMembers makes the member set match pupilIDs exactly.
func (db *DataBase) ReconcileGroupMembers(groupID uint, pupilIDs []uint) ([]models.GroupMember, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if len(pupilIDs) == 0 {
			return tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error
		}

		err := tx.Where("group_id = ? AND pupil_id NOT IN ?", groupID, pupilIDs).
			Delete(&models.GroupMember{}).Error
		if err != nil {
			return err
		}

		var current []models.GroupMember
		if err = tx.Find(&current, "group_id = ?", groupID).Error; err != nil {
			return err
		}
		known := make(map[uint]bool, len(current))
		for _, m := range current {
			known[m.PupilID] = true
		}

		added := make([]models.GroupMember, 0)
		for _, pupil := range pupilIDs {
			if !known[pupil] {
				added = append(added, models.GroupMember{GroupID: groupID, PupilID: pupil, JoinedAt: time.Now()})
			}
		}
		if len(added) == 0 {
			return nil
		}
		return tx.Create(&added).Error
	})
	if err != nil {
		return nil, err
	}
	return db.ListGroupMembers(groupID)
}

func (db *DataBase) ListGroupMembers(groupID uint) (members []models.GroupMember, err error) {
	members = make([]models.GroupMember, 0)
	err = db.Find(&members, "group_id = ?", groupID).Error
	if err != nil {
		members = nil
	}
	return
}

func (db *DataBase) FindGroupMember(groupID, pupilID uint) (*models.GroupMember, error) {
	var member models.GroupMember
	err := db.First(&member, "group_id = ? AND pupil_id = ?", groupID, pupilID).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (db *DataBase) RemoveGroupMember(groupID, pupilID uint) error {
	res := db.Where("group_id = ? AND pupil_id = ?", groupID, pupilID).Delete(&models.GroupMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("pupil %d is not a member of group %d: %w", pupilID, groupID, gorm.ErrRecordNotFound)
	}
	return nil
}
