package models

import "github.com/pkg/errors"

// Ошибки движка согласования. Контроллер сопоставляет их с http статусами
// (422/403/409), остальные ошибки хранилища считаются внутренними.
var (
	// ErrChainResolution - для заявки не удалось определить цепочку согласования
	ErrChainResolution = errors.New("не удалось определить цепочку согласования заявки")
	// ErrInvalidTransition - попытка изменить решение по завершенному этапу
	ErrInvalidTransition = errors.New("решение по этапу согласования уже принято")
	// ErrApprovalNotAllowed - у сотрудника нет прав на решение по этапу
	ErrApprovalNotAllowed = errors.New("сотрудник не может принять решение по этапу согласования")
	// ErrConcurrentModification - этап изменен параллельным запросом, требуется перечитать состояние
	ErrConcurrentModification = errors.New("этап согласования изменен параллельным запросом")
	// ErrRecordNotFound - запись не найдена или принадлежит другой организации
	ErrRecordNotFound = errors.New("запись не найдена")
)
