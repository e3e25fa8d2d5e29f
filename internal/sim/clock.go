package sim

type ClockState int

const (
	Running ClockState = iota
	Paused
)

func (s ClockState) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Clock tracks simulated time and decides whether a tick advances physics.
// Only the owning Simulator calls Advance.
type Clock struct {
	state     ClockState
	baseDt    float64
	timeScale float64
	elapsed   float64
}

func NewClock(baseDt, timeScale float64) *Clock {
	return &Clock{state: Running, baseDt: baseDt, timeScale: timeScale}
}

func (c *Clock) Toggle() {
	if c.state == Running {
		c.state = Paused
	} else {
		c.state = Running
	}
}

func (c *Clock) Pause()  { c.state = Paused }
func (c *Clock) Resume() { c.state = Running }

func (c *Clock) State() ClockState { return c.state }
func (c *Clock) Paused() bool      { return c.state == Paused }

// ScaleTime multiplies the time scale by factor. No bounds are applied.
func (c *Clock) ScaleTime(factor float64) { c.timeScale *= factor }

func (c *Clock) SetTimeScale(v float64) { c.timeScale = v }
func (c *Clock) TimeScale() float64     { return c.timeScale }
func (c *Clock) BaseDt() float64        { return c.baseDt }

// Elapsed is the simulated time accumulated so far, in seconds.
func (c *Clock) Elapsed() float64 { return c.elapsed }

func (c *Clock) EffectiveDt() float64 { return c.baseDt * c.timeScale }

// Advance accounts for one executed step.
func (c *Clock) Advance() {
	c.elapsed += c.baseDt * c.timeScale
}

func (c *Clock) reset(timeScale float64) {
	c.state = Running
	c.timeScale = timeScale
	c.elapsed = 0
}
