package service

// CanMutate - правило владения: изменять и удалять запись может только её
// автор. Неаутентифицированный вызов (пустой actingUserID) отклоняется
// всегда. Ролей и административных исключений нет.
//
// Проверка здесь - быстрый отказ до обращения к БД; то же условие
// продублировано в SQL-запросах репозиториев (author_id в WHERE), так что
// обход этого слоя ничего не даёт.
func CanMutate(actingUserID, authorID string) bool {
	if actingUserID == "" {
		return false
	}
	return actingUserID == authorID
}
