package tui

import (
	"fmt"
	"strings"

	"github.com/vkotlyar/go-host-keeper/models"
)

func (m mainLoopModel) View() string {
	switch m.mode {
	case modeDetail:
		return m.viewDetail()
	case modeForm:
		return m.viewForm()
	case modeConfirmDelete:
		return m.viewConfirmDelete()
	case modeConflict:
		return m.viewConflict()
	default:
		return m.viewList()
	}
}

func authIcon(method models.AuthMethod) string {
	switch method {
	case models.AuthPassword:
		return "[P]"
	case models.AuthPrivateKey:
		return "[K]"
	case models.AuthAgent:
		return "[A]"
	default:
		return "[?]"
	}
}

func authMethodLabel(method models.AuthMethod) string {
	switch method {
	case models.AuthPassword:
		return "пароль"
	case models.AuthPrivateKey:
		return "приватный ключ"
	case models.AuthAgent:
		return "ssh-агент"
	default:
		return string(method)
	}
}

func (m mainLoopModel) viewList() string {
	title := "GoHostKeeper"
	if m.syncing {
		title += "  " + m.spinner.View() + " синхронизация..."
	}

	var b strings.Builder

	if m.loading {
		b.WriteString("Загрузка...\n")
	} else if len(m.profiles) == 0 {
		b.WriteString("Нет профилей. Нажмите n, чтобы добавить первый.\n")
	} else {
		for i, p := range m.profiles {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			target := p.Address()
			if p.Username != "" {
				target = p.Username + "@" + target
			}
			b.WriteString(fmt.Sprintf("%s%s %-24s %s\n",
				cursor, authIcon(p.AuthMethod), fitText(p.Name, 24), fitText(target, 40)))
		}
	}

	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	hotKeys := "enter: открыть │ n: новый │ e: изменить │ d: удалить │ s: синхр. │ l: перелогин │ q: выход"
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m mainLoopModel) viewDetail() string {
	p, ok := m.current()
	if !ok {
		return renderPage("ПРОФИЛЬ", "", "esc: назад")
	}

	secret := "••••••••"
	if p.AuthMethod == models.AuthAgent {
		secret = "- (ssh-агент)"
	} else if m.detailRevealed {
		secret = m.detailSecret
	}

	var b strings.Builder
	b.WriteString("Название   │ ")
	b.WriteString(valueOrDash(p.Name))
	b.WriteString("\n")
	b.WriteString("Хост       │ ")
	b.WriteString(valueOrDash(p.Host))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Порт       │ %d\n", p.Port))
	b.WriteString("Логин      │ ")
	b.WriteString(valueOrDash(p.Username))
	b.WriteString("\n")
	b.WriteString("Аутентиф.  │ ")
	b.WriteString(authMethodLabel(p.AuthMethod))
	b.WriteString("\n")
	b.WriteString("Секрет     │ ")
	b.WriteString(secret)
	b.WriteString("\n")
	b.WriteString("Изменён    │ ")
	b.WriteString(p.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	b.WriteString("\n\n")
	b.WriteString("Команда: ")
	b.WriteString(sshCommand(p))

	if m.errMsg != "" {
		b.WriteString("\n\nОшибка: ")
		b.WriteString(m.errMsg)
	}
	if m.status != "" {
		b.WriteString("\n\nOK: ")
		b.WriteString(m.status)
	}

	hotKeys := "esc: назад │ space: показать/скрыть │ c: копия ssh │ u: копия секрета │ e: изменить"
	return renderPage("ПРОФИЛЬ: "+fitText(p.Name, 30), b.String(), hotKeys)
}

func (m mainLoopModel) viewForm() string {
	title := "НОВЫЙ ПРОФИЛЬ"
	if m.editing != nil {
		title = "ИЗМЕНЕНИЕ ПРОФИЛЯ"
	}

	marker := func(row int) string {
		if m.formFocus == row {
			return ">"
		}
		return " "
	}

	var b strings.Builder
	b.WriteString("  Поле       │ Значение\n")
	b.WriteString("  ───────────┼────────────────────────────────────\n")
	b.WriteString(fmt.Sprintf("%s Название   │ [%s]\n", marker(0), m.formInputs[0].View()))
	b.WriteString(fmt.Sprintf("%s Хост       │ [%s]\n", marker(1), m.formInputs[1].View()))
	b.WriteString(fmt.Sprintf("%s Порт       │ [%s]\n", marker(2), m.formInputs[2].View()))
	b.WriteString(fmt.Sprintf("%s Логин      │ [%s]\n", marker(3), m.formInputs[3].View()))
	b.WriteString(fmt.Sprintf("%s Аутентиф.  │ ← %s →\n", marker(formAuthRow), authMethodLabel(formAuthOptions[m.formAuthIdx])))
	b.WriteString(fmt.Sprintf("%s Секрет     │ [%s]\n", marker(5), m.formInputs[4].View()))

	if m.formSaving {
		b.WriteString("\n[Сохранить...]\n")
	} else {
		b.WriteString("\n[Сохранить]\n")
	}

	if m.formErr != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.formErr)
		b.WriteString("\n")
	}

	hotKeys := "esc: отмена │ tab/↑/↓: поля │ ←/→: метод │ enter: сохранить"
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m mainLoopModel) viewConfirmDelete() string {
	p, ok := m.current()
	if !ok {
		return renderPage("УДАЛЕНИЕ", "", "esc: назад")
	}

	data := fmt.Sprintf("Удалить профиль %q (%s)?", p.Name, p.Address())
	return renderPage("УДАЛЕНИЕ", data, "y: да │ n/esc: нет")
}

func (m mainLoopModel) viewConflict() string {
	var b strings.Builder

	b.WriteString("Локальные профили и профили на сервере расходятся.\n")
	if m.conflict != nil {
		b.WriteString(fmt.Sprintf("Только локально: %d │ Только на сервере: %d │ Конфликты: %d\n",
			len(m.conflict.LocalOnly), len(m.conflict.ServerOnly), len(m.conflict.Conflicts)))
	}
	b.WriteString("\nВыберите, как разрешить расхождение:\n\n")

	for i, strategy := range conflictStrategies {
		cursor := "  "
		if i == m.strategyIdx {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-16s %s\n", cursor, strategy.String(), strategyLabel(strategy)))
	}

	return renderPage("КОНФЛИКТ СИНХРОНИЗАЦИИ", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ esc: отложить")
}

func strategyLabel(strategy models.SyncStrategy) string {
	switch strategy {
	case models.StrategyMerge:
		return "Объединить обе стороны, при конфликте побеждает более новая копия"
	case models.StrategyUploadLocal:
		return "Заменить профили на сервере профилями этого устройства"
	case models.StrategyDownloadRemote:
		return "Заменить профили этого устройства профилями с сервера"
	default:
		return strategy.Description()
	}
}
