package salinity

const numEventTypes = int(EventDragEnd) + 1

// EntityStore is the interface for optional ECS integration.
// When set on a Renderer, interaction events on nodes with a non-zero
// EntityID are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	NodeID   uint32
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	Button   MouseButton
	// Pointer movement since the previous frame, in surface pixels.
	DeltaX float64
	DeltaY float64
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	byType [numEventTypes][]pointerHandler
	nextID uint32
}

// CallbackHandle allows removing a registered renderer-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || int(h.event) >= numEventTypes {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (reg *handlerRegistry) add(event EventType, fn func(PointerContext)) CallbackHandle {
	reg.nextID++
	id := reg.nextID
	reg.byType[event] = append(reg.byType[event], pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: reg, event: event}
}

// On registers fn for every event of the given type on any node. Handlers
// run after the node's own hook.
func (r *Renderer) On(event EventType, fn func(PointerContext)) CallbackHandle {
	if int(event) >= numEventTypes || fn == nil {
		return CallbackHandle{}
	}
	return r.handlers.add(event, fn)
}

// SetEntityStore sets the ECS bridge. Pass nil to disconnect.
func (r *Renderer) SetEntityStore(store EntityStore) {
	r.store = store
}

// nodeHook returns the node's own callback for event.
func nodeHook(n *Node, event EventType) func(PointerContext) {
	switch event {
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	case EventPointerOver:
		return n.OnPointerOver
	case EventDoubleClick:
		return n.OnDoubleClick
	case EventButtonPressed:
		return n.OnButtonPressed
	case EventButtonDown:
		return n.OnButtonDown
	case EventButtonUp:
		return n.OnButtonUp
	case EventDragStart:
		return n.OnDragStart
	case EventDrag:
		return n.OnDrag
	case EventDragEnd:
		return n.OnDragEnd
	}
	return nil
}

// emit fires event on n: the node hook, then renderer handlers, then the
// entity store. Drag events without an OnDrag hook run FollowPointer.
func (r *Renderer) emit(event EventType, n *Node, button MouseButton) {
	f := &r.frame
	ctx := PointerContext{
		Node:   n,
		Frame:  f,
		World:  f.world,
		Local:  n.WorldToLocal(f.world),
		Button: button,
	}
	if hook := nodeHook(n, event); hook != nil {
		hook(ctx)
	} else if event == EventDrag {
		FollowPointer(ctx)
	}
	for _, h := range r.handlers.byType[event] {
		h.fn(ctx)
	}
	if r.store != nil && n.EntityID != 0 {
		d := f.Pointer.Delta()
		r.store.EmitEvent(InteractionEvent{
			Type:     event,
			EntityID: n.EntityID,
			NodeID:   n.ID,
			GlobalX:  ctx.World.X,
			GlobalY:  ctx.World.Y,
			LocalX:   ctx.Local.X,
			LocalY:   ctx.Local.Y,
			Button:   button,
			DeltaX:   d.X,
			DeltaY:   d.Y,
		})
	}
}
