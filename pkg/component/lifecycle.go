package component

// Initializer is implemented by components that set up derived state once,
// when the instance is created.
type Initializer interface {
	OnInit()
}

// Updater is implemented by components that adjust state at the start of
// every update pass, before the tree is redescribed.
type Updater interface {
	OnUpdate()
}

// Init runs OnInit if the component implements Initializer.
func Init[C any](c *Cell[C]) {
	c.BorrowMut(func(v *C) {
		if i, ok := any(v).(Initializer); ok {
			i.OnInit()
		}
	})
}

// Update runs OnUpdate if the component implements Updater.
func Update[C any](c *Cell[C]) {
	c.BorrowMut(func(v *C) {
		if u, ok := any(v).(Updater); ok {
			u.OnUpdate()
		}
	})
}
