package clipboard

import (
	"fmt"
	"log/slog"
	"time"
)

// ControllerConfig wires a Monitor to a Store and ImageStore and
// drives periodic retention cleanup.
type ControllerConfig struct {
	PollInterval    time.Duration
	RetentionPolicy RetentionPolicy
	RetentionEvery  time.Duration
	Logger          *slog.Logger
}

// DefaultControllerConfig polls every 500ms and sweeps retention every
// ten minutes, keeping at most 500 records for up to 30 days.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		PollInterval:    500 * time.Millisecond,
		RetentionPolicy: RetentionPolicy{MaxAgeDays: 30, MaxCount: 500},
		RetentionEvery:  10 * time.Minute,
	}
}

// Controller owns the single goroutine that turns Accessor polls into
// Store writes, plus a second goroutine for periodic retention sweeps.
// All clipboard-history mutation funnels through Controller so the
// store never needs its own locking beyond what *sql.DB already gives
// it.
type Controller struct {
	cfg     ControllerConfig
	monitor *Monitor
	store   *Store
	images  *ImageStore
	log     *slog.Logger
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewController creates a Controller. images may be nil if the build
// has no image storage configured, in which case ContentImage events
// are dropped with a warning.
func NewController(accessor Accessor, store *Store, images *ImageStore, cfg ControllerConfig, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		cfg:    cfg,
		store:  store,
		images: images,
		log:    logger,
	}
	c.monitor = NewMonitor(accessor, cfg.PollInterval)
	c.monitor.Handle = c.onContent
	return c
}

// Start begins clipboard monitoring and the retention sweep loop.
func (c *Controller) Start() {
	c.monitor.Start()
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	go c.retentionLoop()
}

// Stop halts both the monitor and the retention sweep loop.
func (c *Controller) Stop() {
	c.monitor.Stop()
	if c.stopCh != nil {
		close(c.stopCh)
		<-c.doneCh
	}
}

func (c *Controller) onContent(content Content) {
	rec := Record{
		Type:        content.Type,
		ContentHash: content.Hash,
		SourceApp:   content.SourceApp,
	}

	switch content.Type {
	case ContentText:
		rec.Content = string(content.Data)
	case ContentImage:
		if c.images == nil {
			c.log.Warn("clipboard image captured with no image store configured")
			return
		}
		saved, err := c.images.SaveImage(content.Data, content.Format, content.Hash)
		if err != nil {
			c.log.Error("save clipboard image", "error", err)
			return
		}
		rec.Content = saved.ImagePath
		rec.ThumbnailPath = saved.ThumbnailPath
		rec.ImageFormat = content.Format
		rec.ImageWidth = saved.Width
		rec.ImageHeight = saved.Height
		rec.FileSize = saved.FileSize
	default:
		return
	}

	if _, err := c.store.AddRecord(rec); err != nil {
		c.log.Error("add clipboard record", "error", err)
	}
}

// PasteBack marks a record as just used, so it resurfaces at the top
// of history, and returns its content for the caller to place back on
// the system clipboard.
func (c *Controller) PasteBack(id int64) (Record, error) {
	rec, err := c.store.GetRecord(id)
	if err != nil {
		return Record{}, fmt.Errorf("paste back clipboard record: %w", err)
	}
	if rec == nil {
		return Record{}, fmt.Errorf("clipboard record %d not found", id)
	}
	if err := c.store.UpdateLastUsedTime(id); err != nil {
		return Record{}, err
	}
	return *rec, nil
}

func (c *Controller) retentionLoop() {
	defer close(c.doneCh)
	if c.cfg.RetentionEvery <= 0 {
		return
	}
	ticker := time.NewTicker(c.cfg.RetentionEvery)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweepRetention()
		}
	}
}

func (c *Controller) sweepRetention() {
	deleted, err := c.store.DeleteExpiredRecords(c.cfg.RetentionPolicy)
	if err != nil {
		c.log.Error("sweep clipboard retention", "error", err)
		return
	}
	if c.images == nil {
		return
	}
	for _, rec := range deleted {
		if rec.Type != ContentImage {
			continue
		}
		if err := c.images.DeleteImage(rec.Content, rec.ThumbnailPath); err != nil {
			c.log.Error("delete expired clipboard image", "error", err, "record_id", rec.ID)
		}
	}
}
