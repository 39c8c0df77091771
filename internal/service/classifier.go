package service

import (
	"strings"

	"github.com/beluume/obligatorio-bases/internal/model"
)

// ── 邮箱后缀分类 ──
// 参与者的类别与角色不落库，始终按登记邮箱的域名后缀即时推导。
// 规则自上而下求值，首个命中生效；无命中时默认本科生。

type suffixRule struct {
	suffix   string
	category model.Category
	role     model.Role
}

var classifierRules = []suffixRule{
	{suffix: "@docentes.ucu.edu.uy", category: model.CategoryFaculty, role: model.RoleFaculty},
	{suffix: "@postgrados.ucu.edu.uy", category: model.CategoryGraduate, role: model.RoleStudent},
	{suffix: "@correo.ucu.edu.uy", category: model.CategoryUndergraduate, role: model.RoleStudent},
}

// ClassifyEmail 按邮箱后缀推导 (类别, 角色)，大小写不敏感
func ClassifyEmail(email string) (model.Category, model.Role) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, rule := range classifierRules {
		if strings.HasSuffix(normalized, rule.suffix) {
			return rule.category, rule.role
		}
	}
	return model.CategoryUndergraduate, model.RoleStudent
}
