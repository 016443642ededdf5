package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/internal/service"
	"github.com/vkotlyar/go-host-keeper/models"
)

type loopMode int

const (
	modeList loopMode = iota
	modeDetail
	modeForm
	modeConfirmDelete
	modeConflict
)

// formAuthRow is the focus position of the auth-method selector inside the
// profile form. Positions before it are text inputs; the secret input comes
// right after.
const formAuthRow = 4

var formAuthOptions = []models.AuthMethod{
	models.AuthPassword,
	models.AuthPrivateKey,
	models.AuthAgent,
}

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	userID   int64

	mode loopMode

	profiles []models.Profile
	idx      int
	loading  bool
	status   string
	errMsg   string

	detailSecret   string
	detailRevealed bool

	formInputs  []textinput.Model
	formFocus   int
	formAuthIdx int
	formSaving  bool
	formErr     string
	editing     *models.Profile

	syncing     bool
	spinner     spinner.Model
	conflict    *models.Inconsistency
	strategyIdx int

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, userID int64) mainLoopModel {
	effectiveUserID := userID
	if effectiveUserID == 0 {
		effectiveUserID = getSessionUserID()
	}
	if effectiveUserID > 0 {
		setSessionUserID(effectiveUserID)
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return mainLoopModel{
		ctx:      ctx,
		services: services,
		userID:   effectiveUserID,
		loading:  true,
		spinner:  s,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadProfiles()
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.profiles = msg.profiles
		if m.idx >= len(m.profiles) {
			m.idx = len(m.profiles) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case profileSavedMsg:
		m.formSaving = false
		if msg.err != nil {
			m.formErr = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		if m.editing != nil {
			m.status = "Профиль обновлён"
		} else {
			m.status = "Профиль добавлен!"
		}
		m.errMsg = ""
		m.mode = modeList
		m.editing = nil
		m.loading = true
		return m, m.cmdLoadProfiles()

	case profileDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка удаления: %v", msg.err)
			return m, nil
		}
		m.status = "Профиль удалён"
		m.errMsg = ""
		m.mode = modeList
		m.loading = true
		return m, m.cmdLoadProfiles()

	case secretRevealedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.detailSecret = msg.secret
		m.detailRevealed = true
		return m, nil

	case copiedMsg:
		m.status = msg.what + " скопировано в буфер обмена"
		return m, nil

	case syncStartFailedMsg:
		m.syncing = false
		m.errMsg = humanizeServerUnavailableError(msg.err)
		return m, nil

	case syncStateMsg:
		return m.applySyncState(msg.state)

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == modeForm {
			return m.updateFormInput(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(keyMsg)
	case modeDetail:
		return m.updateDetail(keyMsg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	case modeConflict:
		return m.updateConflict(keyMsg)
	default:
		return m.updateList(keyMsg)
	}
}

// applySyncState turns the terminal state of a sync pass into the next UI
// mode. The terminal state is acknowledged immediately except for a pending
// conflict, which stays parked until the user picks a strategy or dismisses
// the screen.
func (m mainLoopModel) applySyncState(state models.SyncState) (tea.Model, tea.Cmd) {
	m.syncing = false

	switch state.Kind {
	case models.SyncSuccess:
		m.status = syncSuccessMessage(state.Result)
		m.errMsg = ""
		m.services.Orchestrator.Acknowledge()
		m.loading = true
		return m, m.cmdLoadProfiles()

	case models.SyncError:
		m.errMsg = "Ошибка синхронизации: " + state.Message
		m.services.Orchestrator.Acknowledge()
		return m, nil

	case models.SyncConflictPending:
		m.conflict = state.Pending
		m.strategyIdx = 0
		m.mode = modeConflict
		return m, nil
	}

	return m, nil
}

func syncSuccessMessage(result *models.SyncResult) string {
	if result == nil {
		return "Синхронизация завершена"
	}
	if len(result.Failed) > 0 {
		return fmt.Sprintf("Синхронизация завершена частично: %d ок, %d с ошибками",
			len(result.Succeeded), len(result.Failed))
	}
	if len(result.Succeeded) == 0 {
		return "Синхронизация завершена: изменений нет"
	}
	return fmt.Sprintf("Синхронизация завершена: %d профилей", len(result.Succeeded))
}

// ---- list screen ----

func (m mainLoopModel) updateList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit

	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}

	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.profiles)-1 {
			m.idx++
		}

	case key.Matches(keyMsg, keys.enter):
		if _, ok := m.current(); ok {
			m.mode = modeDetail
			m.detailRevealed = false
			m.detailSecret = ""
		}

	case key.Matches(keyMsg, keys.newItem):
		m.startForm(nil)

	case key.Matches(keyMsg, keys.edit):
		if p, ok := m.current(); ok {
			m.startForm(&p)
		}

	case key.Matches(keyMsg, keys.delete):
		if _, ok := m.current(); ok {
			m.mode = modeConfirmDelete
		}

	case key.Matches(keyMsg, keys.sync):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = ""
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdPerformSync())

	case key.Matches(keyMsg, keys.logout):
		clearSessionUserID()
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

// ---- detail screen ----

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.current()
	if !ok {
		m.mode = modeList
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.mode = modeList
		m.detailRevealed = false
		m.detailSecret = ""

	case key.Matches(keyMsg, keys.reveal):
		if m.detailRevealed {
			m.detailRevealed = false
			m.detailSecret = ""
			return m, nil
		}
		if p.AuthMethod == models.AuthAgent {
			return m, nil
		}
		return m, m.cmdRevealSecret(p)

	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopy("SSH-команда", sshCommand(p))

	case key.Matches(keyMsg, keys.secret):
		if !m.detailRevealed {
			return m, nil
		}
		return m, cmdCopy("Секрет", m.detailSecret)

	case key.Matches(keyMsg, keys.edit):
		m.detailRevealed = false
		m.detailSecret = ""
		m.startForm(&p)
	}

	return m, nil
}

func sshCommand(p models.Profile) string {
	if p.Username == "" {
		return fmt.Sprintf("ssh -p %d %s", p.Port, p.Host)
	}
	return fmt.Sprintf("ssh -p %d %s@%s", p.Port, p.Username, p.Host)
}

// ---- delete confirmation ----

func (m mainLoopModel) updateConfirmDelete(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.current()
	if !ok {
		m.mode = modeList
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.yes):
		return m, m.cmdDeleteProfile(p.ID)
	case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
		m.mode = modeList
	}

	return m, nil
}

// ---- conflict resolution ----

var conflictStrategies = []models.SyncStrategy{
	models.StrategyMerge,
	models.StrategyUploadLocal,
	models.StrategyDownloadRemote,
}

func (m mainLoopModel) updateConflict(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.up):
		if m.strategyIdx > 0 {
			m.strategyIdx--
		}

	case key.Matches(keyMsg, keys.down):
		if m.strategyIdx < len(conflictStrategies)-1 {
			m.strategyIdx++
		}

	case key.Matches(keyMsg, keys.enter):
		strategy := conflictStrategies[m.strategyIdx]
		m.mode = modeList
		m.conflict = nil
		m.syncing = true
		return m, tea.Batch(m.spinner.Tick, m.cmdResolveConflict(strategy))

	case key.Matches(keyMsg, keys.esc):
		// Dismissing abandons the parked conflict; it resurfaces on
		// the next pass.
		m.services.Orchestrator.Acknowledge()
		m.conflict = nil
		m.mode = modeList
		m.status = "Конфликт отложен до следующей синхронизации"
	}

	return m, nil
}

// ---- profile form ----

func (m *mainLoopModel) startForm(existing *models.Profile) {
	fields := make([]textinput.Model, 5)

	fields[0] = textinput.New()
	fields[0].Placeholder = "name"
	fields[0].Width = 40
	fields[0].Focus()

	fields[1] = textinput.New()
	fields[1].Placeholder = "host"
	fields[1].Width = 40

	fields[2] = textinput.New()
	fields[2].Placeholder = "22"
	fields[2].CharLimit = 5
	fields[2].Width = 10

	fields[3] = textinput.New()
	fields[3].Placeholder = "user"
	fields[3].Width = 40

	fields[4] = textinput.New()
	fields[4].Placeholder = "secret (пусто = без изменений)"
	fields[4].EchoMode = textinput.EchoPassword
	fields[4].EchoCharacter = '*'
	fields[4].Width = 40

	m.formAuthIdx = 0
	if existing != nil {
		fields[0].SetValue(existing.Name)
		fields[1].SetValue(existing.Host)
		fields[2].SetValue(strconv.Itoa(existing.Port))
		fields[3].SetValue(existing.Username)
		for i, method := range formAuthOptions {
			if method == existing.AuthMethod {
				m.formAuthIdx = i
			}
		}
		copied := *existing
		m.editing = &copied
	} else {
		fields[2].SetValue("22")
		m.editing = nil
	}

	m.formInputs = fields
	m.formFocus = 0
	m.formErr = ""
	m.formSaving = false
	m.mode = modeForm
}

// formInputIndex maps a focus position onto the formInputs slice, skipping
// the auth-method selector row.
func (m mainLoopModel) formInputIndex() (int, bool) {
	if m.formFocus < formAuthRow {
		return m.formFocus, true
	}
	if m.formFocus > formAuthRow {
		return m.formFocus - 1, true
	}
	return 0, false
}

func (m mainLoopModel) updateForm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const formRows = 6 // five inputs plus the auth-method selector

	switch keyMsg.String() {
	case "esc":
		m.mode = modeList
		m.editing = nil
		m.formErr = ""
		return m, nil

	case "tab", "down":
		m.blurFormInput()
		m.formFocus = (m.formFocus + 1) % formRows
		m.focusFormInput()
		return m, nil

	case "shift+tab", "up":
		m.blurFormInput()
		m.formFocus = (m.formFocus - 1 + formRows) % formRows
		m.focusFormInput()
		return m, nil

	case "left", "right":
		if m.formFocus == formAuthRow {
			if keyMsg.String() == "right" {
				m.formAuthIdx = (m.formAuthIdx + 1) % len(formAuthOptions)
			} else {
				m.formAuthIdx = (m.formAuthIdx - 1 + len(formAuthOptions)) % len(formAuthOptions)
			}
			return m, nil
		}

	case "enter":
		if m.formSaving {
			return m, nil
		}
		return m.submitForm()
	}

	return m.updateFormInput(keyMsg)
}

func (m mainLoopModel) updateFormInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	idx, ok := m.formInputIndex()
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[idx], cmd = m.formInputs[idx].Update(msg)
	return m, cmd
}

func (m *mainLoopModel) blurFormInput() {
	if idx, ok := m.formInputIndex(); ok {
		m.formInputs[idx].Blur()
	}
}

func (m *mainLoopModel) focusFormInput() {
	if idx, ok := m.formInputIndex(); ok {
		m.formInputs[idx].Focus()
	}
}

func (m mainLoopModel) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.formInputs[0].Value())
	host := strings.TrimSpace(m.formInputs[1].Value())
	portRaw := strings.TrimSpace(m.formInputs[2].Value())
	username := strings.TrimSpace(m.formInputs[3].Value())
	secret := m.formInputs[4].Value()
	method := formAuthOptions[m.formAuthIdx]

	if name == "" || host == "" {
		m.formErr = "Название и хост обязательны"
		return m, nil
	}

	port, err := strconv.Atoi(portRaw)
	if err != nil || port < 1 || port > 65535 {
		m.formErr = "Порт должен быть числом от 1 до 65535"
		return m, nil
	}

	if m.editing == nil && method != models.AuthAgent && secret == "" {
		m.formErr = "Секрет обязателен для этого метода аутентификации"
		return m, nil
	}

	draft := service.ProfileDraft{
		Name:       name,
		Host:       host,
		Port:       port,
		Username:   username,
		AuthMethod: method,
		Secret:     secret,
	}

	m.formErr = ""
	m.formSaving = true
	return m, m.cmdSaveProfile(draft)
}

// ---- async commands ----

func (m mainLoopModel) cmdLoadProfiles() tea.Cmd {
	ctx := m.ctx
	profiles := m.services.Profiles

	return func() tea.Msg {
		list, err := profiles.List(ctx)
		return listLoadedMsg{profiles: list, err: err}
	}
}

func (m mainLoopModel) cmdSaveProfile(draft service.ProfileDraft) tea.Cmd {
	ctx := m.ctx
	profiles := m.services.Profiles
	editing := m.editing

	return func() tea.Msg {
		var err error
		if editing != nil {
			_, err = profiles.Update(ctx, *editing, draft)
		} else {
			_, err = profiles.Create(ctx, draft)
		}
		return profileSavedMsg{err: err}
	}
}

func (m mainLoopModel) cmdDeleteProfile(id uuid.UUID) tea.Cmd {
	ctx := m.ctx
	profiles := m.services.Profiles

	return func() tea.Msg {
		return profileDeletedMsg{err: profiles.Delete(ctx, id)}
	}
}

func (m mainLoopModel) cmdRevealSecret(p models.Profile) tea.Cmd {
	profiles := m.services.Profiles

	return func() tea.Msg {
		secret, err := profiles.RevealSecret(p)
		return secretRevealedMsg{secret: secret, err: err}
	}
}

func (m mainLoopModel) cmdPerformSync() tea.Cmd {
	ctx := m.ctx
	orchestrator := m.services.Orchestrator

	return func() tea.Msg {
		state, ok := <-orchestrator.PerformSync(ctx, "")
		if !ok {
			return syncStartFailedMsg{err: context.Canceled}
		}
		return syncStateMsg{state: state}
	}
}

func (m mainLoopModel) cmdResolveConflict(strategy models.SyncStrategy) tea.Cmd {
	ctx := m.ctx
	orchestrator := m.services.Orchestrator

	return func() tea.Msg {
		ch, err := orchestrator.ResolveConflict(ctx, strategy)
		if err != nil {
			return syncStartFailedMsg{err: err}
		}
		state, ok := <-ch
		if !ok {
			return syncStartFailedMsg{err: context.Canceled}
		}
		return syncStateMsg{state: state}
	}
}

func cmdCopy(what, value string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(value); err != nil {
			return syncStartFailedMsg{err: err}
		}
		return copiedMsg{what: what}
	}
}

func (m mainLoopModel) current() (models.Profile, bool) {
	if len(m.profiles) == 0 || m.idx < 0 || m.idx >= len(m.profiles) {
		return models.Profile{}, false
	}
	return m.profiles[m.idx], true
}
