package model

// SoloModel 单人练习：服务端只保存防作弊会话，分数在本地累计后一次性提交
type SoloModel struct {
	sessionID string
	score     int
	lines     int
	hardMode  bool
	submitted bool
}

// NewSoloModel creates a new SoloModel.
func NewSoloModel() *SoloModel {
	return &SoloModel{}
}

// Reset 清空
func (m *SoloModel) Reset() {
	*m = SoloModel{}
}

// Start 收到 session_started 后开始新的一局
func (m *SoloModel) Start(sessionID string) {
	hard := m.hardMode
	m.Reset()
	m.sessionID = sessionID
	m.hardMode = hard
}

// RecordLineClear 累计一次消行，返回新的总分与总行数
func (m *SoloModel) RecordLineClear(lines, points int) (score, total int) {
	m.lines += lines
	m.score += points
	return m.score, m.lines
}

// ToggleHardMode 只能在第一次消行前切换
func (m *SoloModel) ToggleHardMode() bool {
	if m.lines > 0 || m.submitted {
		return false
	}
	m.hardMode = !m.hardMode
	return true
}

func (m *SoloModel) MarkSubmitted()    { m.submitted = true }
func (m *SoloModel) SessionID() string { return m.sessionID }
func (m *SoloModel) Score() int        { return m.score }
func (m *SoloModel) Lines() int        { return m.lines }
func (m *SoloModel) HardMode() bool    { return m.hardMode }
func (m *SoloModel) Submitted() bool   { return m.submitted }
