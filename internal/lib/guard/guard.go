// Package guard реализует двухступенчатую проверку доступа к объявлениям.
//
// Первая ступень — предикат роли: оценивается из claims токена до входа
// в обработчик, ресурс при этом ещё не загружается. Вторая ступень —
// предикат владения: сравнение идентификатора вызывающего с владельцем
// уже загруженного ресурса. Обе ступени возвращают Decision, а не
// управляющие исключения.
package guard

import "slices"

// Decision — результат проверки доступа.
// Reason предназначен для логов, наружу он не отдаётся:
// клиент всегда получает одинаковое "access denied".
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow возвращает разрешающее решение.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny возвращает запрещающее решение с причиной для логов.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// HasRole — предикат роли: входит ли роль вызывающего в список разрешённых.
func HasRole(role string, allowed ...string) Decision {
	if slices.Contains(allowed, role) {
		return Allow()
	}
	return Deny("role is not permitted")
}

// Owner — предикат владения: совпадает ли вызывающий с владельцем ресурса.
// Применяется после загрузки ресурса, когда известен его владелец.
func Owner(userUID, ownerUID string) Decision {
	if userUID != "" && userUID == ownerUID {
		return Allow()
	}
	return Deny("caller is not the owner")
}
