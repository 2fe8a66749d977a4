// services/ledhal/internal/service/service.go
package service

import (
	"context"
	"time"

	"ledcode-go/bus"
	"ledcode-go/errcode"
	"ledcode-go/services/ledhal/internal/consts"
	"ledcode-go/services/ledhal/internal/dispatch"
	"ledcode-go/services/ledhal/internal/halerr"
	"ledcode-go/services/ledhal/internal/ledcore"
	"ledcode-go/services/ledhal/internal/registry"
	"ledcode-go/types"
	"ledcode-go/x/ramp"
)

type capRef struct {
	devID   string
	channel int
}

type chipEntry struct {
	adaptor ledcore.Adaptor
	worker  *dispatch.Worker
	cancel  context.CancelFunc
	caps    []int    // channel index -> capability id
	names   []string // channel index -> registered name
	maxB    []uint16 // channel index -> advertised max brightness
	fades   map[int]chan struct{}
}

type Service struct {
	conn  *bus.Connection
	buses ledcore.I2CBusFactory

	results chan ledcore.Result

	chips     map[string]*chipEntry
	capToChip map[int]capRef
	nextCapID int
	names     map[string]struct{} // all registered channel names
}

var (
	topicConfig = bus.T(consts.TokConfig, consts.TokLEDHAL)
	topicCtrl   = bus.T(consts.TokLEDHAL, types.KindLED, bus.Plus, consts.TokControl, bus.Plus)
)

func New(conn *bus.Connection, buses ledcore.I2CBusFactory) *Service {
	return &Service{
		conn:      conn,
		buses:     buses,
		results:   make(chan ledcore.Result, 64),
		chips:     map[string]*chipEntry{},
		capToChip: map[int]capRef{},
		names:     map[string]struct{}{},
	}
}

func (s *Service) Run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfig)
	ctrlSub := s.conn.Subscribe(topicCtrl)
	defer s.conn.Unsubscribe(cfgSub)
	defer s.conn.Unsubscribe(ctrlSub)

	s.publishState("idle", "awaiting_config", nil)

	for {
		select {
		case <-ctx.Done():
			for devID := range s.chips {
				s.teardownChip(devID)
			}
			s.publishState("stopped", "context_cancelled", nil)
			return

		case msg := <-cfgSub.Channel():
			cfg, err := types.DecodeLEDHALConfig(msg.Payload)
			if err != nil {
				s.publishState("error", "config_decode_failed", err)
				continue
			}
			if err := s.applyConfig(ctx, cfg); err != nil {
				s.publishState("error", "apply_config_failed", err)
				continue
			}
			s.publishState("ready", "configured", nil)

		case msg := <-ctrlSub.Channel():
			s.handleControl(msg)

		case r := <-s.results:
			s.handleResult(r)
		}
	}
}

// -----------------------------------------------------------------------------
// Configuration & lifecycle
// -----------------------------------------------------------------------------

func (s *Service) applyConfig(ctx context.Context, cfg types.LEDHALConfig) error {
	seen := map[string]struct{}{}

	for i := range cfg.Chips {
		c := &cfg.Chips[i]
		seen[c.ID] = struct{}{}

		// Simple idempotence: an already-built chip is left alone.
		if _, exists := s.chips[c.ID]; exists {
			continue
		}

		b, ok := registry.Lookup(c.Type)
		if !ok {
			return halerr.ErrUnknownType
		}

		ad, err := b.Build(registry.BuildInput{
			Ctx:      ctx,
			Buses:    s.buses,
			DeviceID: c.ID,
			Type:     c.Type,
			BusID:    c.Bus,
			Addr:     c.Addr,
			Channels: c.Channels,
		})
		if err != nil {
			return err
		}

		if err := s.registerChip(ctx, c.ID, ad); err != nil {
			return err
		}
	}

	// Tidy-up: tear down chips no longer in config.
	for devID := range s.chips {
		if _, ok := seen[devID]; !ok {
			s.teardownChip(devID)
		}
	}
	return nil
}

// registerChip exposes every channel in order 0..n-1 and drives each to its
// initial off state. A registration conflict partway unwinds the channels
// registered so far and fails the whole chip.
func (s *Service) registerChip(ctx context.Context, devID string, ad ledcore.Adaptor) error {
	n := ad.NumChannels()
	ent := &chipEntry{
		adaptor: ad,
		caps:    make([]int, n),
		names:   make([]string, n),
		maxB:    make([]uint16, n),
		fades:   map[int]chan struct{}{},
	}
	caps := ad.Capabilities()

	for i := 0; i < n; i++ {
		name := devID
		var maxB uint16
		if det, ok := caps[i].Info.Detail.(types.LEDInfo); ok {
			name = det.Name
			maxB = det.MaxBrightness
		}
		if _, dup := s.names[name]; dup {
			s.unregisterChannels(ent, i)
			return halerr.ErrDuplicateName
		}

		id := s.nextCapID
		s.nextCapID++
		ent.caps[i] = id
		ent.names[i] = name
		ent.maxB[i] = maxB
		s.capToChip[id] = capRef{devID: devID, channel: i}
		s.names[name] = struct{}{}

		s.pubRet(id, consts.TokInfo, caps[i].Info)
		s.pubRet(id, consts.TokState, types.CapabilityState{Link: types.LinkUp, TS: time.Now()})

		// Initial apply: channel starts at level 0, so this normally does a
		// single register read. A transport failure here degrades the channel
		// but does not unwind the chip; a later apply reconverges.
		if err := ad.Apply(i); err != nil {
			s.pubRet(id, consts.TokState, types.CapabilityState{
				Link:  types.LinkDegraded,
				TS:    time.Now(),
				Error: string(errcode.MapDriverErr(err)),
			})
		}
	}

	workerCtx, cancel := context.WithCancel(ctx)
	ent.worker = dispatch.New(devID, n, ad, s.results)
	ent.cancel = cancel
	ent.worker.Start(workerCtx)
	s.chips[devID] = ent
	return nil
}

// unregisterChannels clears the first 'upto' registered channels of a chip
// whose registration failed partway. The dispatch worker has not started at
// this point, so no deferred task can exist for them.
func (s *Service) unregisterChannels(ent *chipEntry, upto int) {
	for i := 0; i < upto; i++ {
		id := ent.caps[i]
		s.pubRet(id, consts.TokInfo, nil)
		s.pubRet(id, consts.TokState, types.CapabilityState{Link: types.LinkDown, TS: time.Now()})
		delete(s.capToChip, id)
		delete(s.names, ent.names[i])
	}
}

// teardownChip cancels fades and the dispatch worker, awaits the in-flight
// apply if any, then unregisters every channel. Nothing may touch hardware
// for this chip after teardownChip returns.
func (s *Service) teardownChip(devID string) {
	ent, ok := s.chips[devID]
	if !ok {
		return
	}
	for ch, c := range ent.fades {
		close(c)
		delete(ent.fades, ch)
	}
	if ent.cancel != nil {
		ent.cancel()
	}
	if ent.worker != nil {
		ent.worker.Wait()
	}
	s.unregisterChannels(ent, len(ent.caps))
	_ = ent.adaptor.Close()
	delete(s.chips, devID)
}

// -----------------------------------------------------------------------------
// Control plane
// -----------------------------------------------------------------------------

func (s *Service) handleControl(msg *bus.Message) {
	// ledhal/led/<id:int>/control/<verb>
	if msg.Topic.Len() < 5 {
		return
	}
	id, ok := asInt(msg.Topic.At(2))
	if !ok {
		s.replyErr(msg, halerr.ErrInvalidCapAddr)
		return
	}
	verb, _ := msg.Topic.At(4).(string)

	ref, ok := s.capToChip[id]
	if !ok {
		s.replyErr(msg, halerr.ErrUnknownCap)
		return
	}
	ent := s.chips[ref.devID]

	switch verb {
	case consts.CtrlSet:
		p, ok := msg.Payload.(types.LEDSet)
		if !ok {
			s.replyErr(msg, halerr.ErrInvalidPayload)
			return
		}
		s.stopFade(ent, ref.channel)
		if err := ent.adaptor.SetBrightness(ref.channel, p.Brightness); err != nil {
			s.replyErr(msg, err)
			return
		}
		ent.worker.Submit(ref.channel)
		s.conn.Reply(msg, types.OKReply{OK: true}, false)

	case consts.CtrlGet:
		v, err := ent.adaptor.Value(ref.channel)
		if err != nil {
			s.replyErr(msg, err)
			return
		}
		s.conn.Reply(msg, v, false)

	case consts.CtrlFade:
		p, ok := msg.Payload.(types.LEDFade)
		if !ok {
			s.replyErr(msg, halerr.ErrInvalidPayload)
			return
		}
		s.startFade(ent, ref, p)
		s.conn.Reply(msg, types.OKReply{OK: true}, false)

	default:
		s.replyErr(msg, halerr.ErrUnsupported)
	}
}

// startFade replaces any running fade on the channel with a fresh linear
// ramp of brightness requests; each step goes through the normal deferred
// apply path, so steps coalesce under a slow bus instead of queueing.
func (s *Service) startFade(ent *chipEntry, ref capRef, p types.LEDFade) {
	s.stopFade(ent, ref.channel)

	cancel := make(chan struct{})
	ent.fades[ref.channel] = cancel

	cur, _ := ent.adaptor.Value(ref.channel)
	ad := ent.adaptor
	worker := ent.worker
	channel := ref.channel
	top := ent.maxB[ref.channel]

	go func() {
		tick := func(d time.Duration) bool {
			select {
			case <-cancel:
				return false
			case <-time.After(d):
				return true
			}
		}
		ramp.StartLinear(cur.Brightness, p.Brightness, top, p.DurationMS, p.Steps, tick,
			func(lvl uint16) {
				_ = ad.SetBrightness(channel, lvl)
				worker.Submit(channel)
			})
	}()
}

func (s *Service) stopFade(ent *chipEntry, channel int) {
	if c, ok := ent.fades[channel]; ok {
		close(c)
		delete(ent.fades, channel)
	}
}

// -----------------------------------------------------------------------------
// Results
// -----------------------------------------------------------------------------

func (s *Service) handleResult(r ledcore.Result) {
	ent, ok := s.chips[r.DevID]
	if !ok {
		return
	}
	id := ent.caps[r.Channel]
	now := time.Now()

	if r.Err != nil {
		s.pubRet(id, consts.TokState, types.CapabilityState{
			Link:  types.LinkDegraded,
			TS:    now,
			Error: string(errcode.MapDriverErr(r.Err)),
		})
		return
	}
	if v, err := ent.adaptor.Value(r.Channel); err == nil {
		s.conn.Publish(s.conn.NewMessage(capTopic(id, consts.TokValue), v, false))
	}
	s.pubRet(id, consts.TokState, types.CapabilityState{Link: types.LinkUp, TS: now})
}

// -----------------------------------------------------------------------------
// Bus helpers & utils
// -----------------------------------------------------------------------------

func (s *Service) publishState(level, status string, err error) {
	pl := types.HALState{Level: level, Status: status, TS: time.Now()}
	if err != nil {
		pl.Error = err.Error()
	}
	s.conn.Publish(s.conn.NewMessage(bus.T(consts.TokLEDHAL, consts.TokState), pl, true))
}

func (s *Service) replyErr(req *bus.Message, err error) {
	if len(req.ReplyTo) == 0 {
		return
	}
	text := string(errcode.Error)
	if err != nil {
		text = err.Error()
	}
	s.conn.Reply(req, types.ErrorReply{OK: false, Error: text}, false)
}

func capTopic(id int, suffix string) bus.Topic {
	return bus.T(consts.TokLEDHAL, types.KindLED, id, suffix)
}

func (s *Service) pubRet(id int, suffix string, p any) {
	s.conn.Publish(s.conn.NewMessage(capTopic(id, suffix), p, true))
}

func asInt(t any) (int, bool) {
	switch v := t.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	default:
		return 0, false
	}
}
