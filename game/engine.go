package game

import (
	"go.uber.org/zap"
)

// Option 引擎构造选项
type Option func(*Engine)

// WithRandom 注入食物随机源
func WithRandom(r RandomSource) Option {
	return func(e *Engine) { e.food.SetRandom(r) }
}

// WithScheduler 注入周期调度器。默认是不会自行触发的 ManualScheduler，
// 需要自动推进时注入带 dispatch 的 TickerScheduler，或由调用方在同一上下文调用 Tick。
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// WithLogger 注入诊断日志，默认 zap.NewNop()
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine 编排 Snake 与 Food，维护状态机、分数与事件发布。
// 非并发安全：命令与 Tick 必须来自同一执行上下文。
type Engine struct {
	cfg       Config
	bounds    Bounds
	snake     *Snake
	food      *Food
	scheduler Scheduler
	log       *zap.Logger

	state  State
	score  int
	eaten  int
	reason EndReason

	snakeMoved   signal[[]Position]
	foodSpawned  signal[Position]
	scoreChanged signal[int]
	stateChanged signal[State]
	gameOver     signal[int]
}

// NewEngine 按配置创建引擎，初始状态为 Ready，蛇已居中、食物未放置。
// 配置应事先通过 Validate。
func NewEngine(cfg Config, opts ...Option) *Engine {
	b := cfg.Bounds()
	e := &Engine{
		cfg:       cfg,
		bounds:    b,
		snake:     NewSnake(b.Center(), cfg.InitialLength, cfg.InitialHeading),
		food:      NewFood(cfg.Width, cfg.Height),
		scheduler: NewManualScheduler(),
		log:       zap.NewNop(),
		state:     Ready,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ==================== 事件订阅 ====================

func (e *Engine) OnSnakeMoved(fn func(body []Position)) { e.snakeMoved.connect(fn) }
func (e *Engine) OnFoodSpawned(fn func(p Position)) { e.foodSpawned.connect(fn) }
func (e *Engine) OnScoreChanged(fn func(score int)) { e.scoreChanged.connect(fn) }
func (e *Engine) OnStateChanged(fn func(s State)) { e.stateChanged.connect(fn) }
func (e *Engine) OnGameOver(fn func(finalScore int)) { e.gameOver.connect(fn) }

// ==================== 游戏控制 ====================

// Start 从 Ready 或 GameOver 先完整重置，然后进入 Running 并启动调度；
// 在第一次 tick 之前发布初始快照。Running/Paused 下为空操作。
func (e *Engine) Start() {
	if e.state == Ready || e.state == GameOver {
		e.Reset()
	}
	if e.state != Ready {
		e.log.Debug("start ignored", zap.Stringer("state", e.state))
		return
	}
	e.setState(Running)
	e.scheduler.Start(e.cfg.TickInterval, e.Tick)
	e.publishSnapshot()
}

// Pause 仅在 Running 下有效
func (e *Engine) Pause() {
	if e.state != Running {
		e.log.Debug("pause ignored", zap.Stringer("state", e.state))
		return
	}
	e.scheduler.Stop()
	e.setState(Paused)
}

// Resume 仅在 Paused 下有效；不重新发布快照
func (e *Engine) Resume() {
	if e.state != Paused {
		e.log.Debug("resume ignored", zap.Stringer("state", e.state))
		return
	}
	e.setState(Running)
	e.scheduler.Start(e.cfg.TickInterval, e.Tick)
}

// Reset 任意状态下可用：停止调度，蛇居中、分数清零、重新放置食物，进入 Ready
func (e *Engine) Reset() {
	e.scheduler.Stop()

	e.snake.Reset(e.bounds.Center(), e.cfg.InitialLength, e.cfg.InitialHeading)
	e.food.Reset(e.cfg.Width, e.cfg.Height)
	if !e.food.Respawn(e.snake.body) {
		e.log.Warn("no free cell for food after reset", zap.Int("length", e.snake.Len()))
	}
	e.score = 0
	e.eaten = 0
	e.reason = EndNone

	e.setState(Ready)
	e.publishSnapshot()
}

// TogglePause Running 时暂停、Paused 时恢复，其余状态忽略
func (e *Engine) TogglePause() {
	switch e.state {
	case Running:
		e.Pause()
	case Paused:
		e.Resume()
	}
}

// SetDirection 仅在 Running 下转发给蛇；反向转向被拒绝。
// 两次 tick 之间多次调用以最后一次被接受的方向为准。
func (e *Engine) SetDirection(d Direction) bool {
	if e.state != Running {
		return false
	}
	if !e.snake.SetDirection(d) {
		e.log.Debug("direction rejected",
			zap.Stringer("current", e.snake.Direction()), zap.Stringer("requested", d))
		return false
	}
	return true
}

// Close 取消尚未执行的 tick
func (e *Engine) Close() {
	e.scheduler.Stop()
}

// ==================== 状态查询 ====================

func (e *Engine) State() State { return e.state }
func (e *Engine) Score() int { return e.score }
func (e *Engine) SnakeBody() []Position { return e.snake.Body() }
func (e *Engine) SnakeLength() int { return e.snake.Len() }
func (e *Engine) Direction() Direction { return e.snake.Direction() }
func (e *Engine) FoodPosition() Position { return e.food.Position() }
func (e *Engine) Width() int { return e.cfg.Width }
func (e *Engine) Height() int { return e.cfg.Height }
func (e *Engine) Config() Config { return e.cfg }
func (e *Engine) EndReason() EndReason { return e.reason }
func (e *Engine) SchedulerActive() bool { return e.scheduler.Active() }

// FoodEaten 本局吃到的食物数，与 PointsPerFood 无关
func (e *Engine) FoodEaten() int { return e.eaten }

// ==================== 主循环 ====================

// Tick 推进一步。顺序：越界判断 → 是否吃到食物（增长或移动）→
// 移动后自碰撞判断 → 发布蛇身。非 Running 时忽略。
func (e *Engine) Tick() {
	if e.state != Running {
		return
	}

	next := e.snake.NextHead()
	if !e.bounds.Contains(next) {
		e.endGame(EndWall)
		return
	}

	if next == e.food.Position() {
		e.snake.Grow()
		e.eaten++
		e.score += e.cfg.PointsPerFood
		e.scoreChanged.emit(e.score)

		if !e.food.Respawn(e.snake.body) {
			e.endGame(EndBoardFull)
			return
		}
		e.foodSpawned.emit(e.food.Position())
	} else {
		e.snake.Move()
	}

	// 移动后检查：非增长时刚腾出的蛇尾格可以进入，增长时不行
	if e.snake.bites() {
		e.endGame(EndSelf)
		return
	}

	e.snakeMoved.emit(e.snake.Body())
}

func (e *Engine) endGame(reason EndReason) {
	e.scheduler.Stop()
	e.reason = reason
	if reason == EndBoardFull {
		e.log.Info("snake filled the board", zap.Int("score", e.score))
	}
	e.log.Debug("game over",
		zap.Stringer("reason", reason),
		zap.Int("score", e.score),
		zap.Int("length", e.snake.Len()))
	e.setState(GameOver)
	e.gameOver.emit(e.score)
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.state = s
	e.stateChanged.emit(s)
}

func (e *Engine) publishSnapshot() {
	e.snakeMoved.emit(e.snake.Body())
	e.foodSpawned.emit(e.food.Position())
	e.scoreChanged.emit(e.score)
}
