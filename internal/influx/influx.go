package influx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gzreplay/gzr/internal/cache"
	"github.com/gzreplay/gzr/internal/config"
	"github.com/gzreplay/gzr/internal/storage"
	"github.com/gzreplay/gzr/pkg/core"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

// ErrDisabled is returned by Connect when influx.enabled is false.
var ErrDisabled = errors.New("influx.enabled is false")

const pingTimeout = 5 * time.Second

// Manager handles InfluxDB connections and writes. It satisfies
// storage.Backend so the worker can fan replays out to it like any other sink.
type Manager struct {
	Client       influxdb2.Client
	Writer       influxdb2_api.WriteAPI
	BackupWriter *gzip.Writer
	IsValid      bool
	Logger       zerolog.Logger

	cfg        config.InfluxConfig
	backupFile *os.File
	mu         sync.Mutex
}

// NewManager creates a new InfluxDB manager.
func NewManager(cfg config.InfluxConfig, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		Logger: log,
	}
}

// Init connects; see Connect.
func (m *Manager) Init() error {
	return m.Connect()
}

// Connect establishes a connection to InfluxDB. When the server cannot be
// reached, points are written as line protocol to the gzip backup file instead.
func (m *Manager) Connect() error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	m.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf("%s://%s:%s", m.cfg.Protocol, m.cfg.Host, m.cfg.Port),
		m.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(2500).
			SetFlushInterval(1000),
	)

	// validate client connection health
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	running, err := m.Client.Ping(ctx)
	cancel()

	if err != nil || !running {
		m.IsValid = false
		m.Logger.Info().Str("backupPath", m.cfg.BackupPath).
			Msg("Failed to initialize InfluxDB client, writing to backup file")
		if err := m.openBackup(); err != nil {
			return err
		}
		m.Logger.Warn().Msg("InfluxDB client failed to initialize, using backup writer")
		return nil
	}

	m.IsValid = true
	if err := m.setupOrganizationAndBucket(); err != nil {
		return err
	}
	m.createWriter()
	m.Logger.Info().Msg("InfluxDB client initialized")
	return nil
}

func (m *Manager) openBackup() error {
	if m.BackupWriter != nil {
		return nil
	}
	file, err := os.OpenFile(m.cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %v", err)
	}
	m.backupFile = file
	m.BackupWriter = gzip.NewWriter(file)
	return nil
}

func (m *Manager) setupOrganizationAndBucket() error {
	ctx := context.Background()
	orgName := m.cfg.Org

	// ensure org exists
	influxOrg, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Info().Str("org", orgName).Msg("Organization not found, creating")
		influxOrg, err = m.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			m.Logger.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	// ensure bucket exists with 90 day retention
	if _, err = m.Client.BucketsAPI().FindBucketByName(ctx, m.cfg.Bucket); err != nil {
		m.Logger.Info().Str("bucket", m.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = m.Client.BucketsAPI().CreateBucketWithName(ctx, influxOrg, m.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 90, // 90 days
		})
		if err != nil {
			m.Logger.Error().Err(err).Str("bucket", m.cfg.Bucket).Msg("Error creating bucket")
			return err
		}
	}

	return nil
}

func (m *Manager) createWriter() {
	m.Writer = m.Client.WriteAPI(m.cfg.Org, m.cfg.Bucket)

	errorsCh := m.Writer.Errors()
	go func() {
		for writeErr := range errorsCh {
			m.Logger.Error().Err(writeErr).Str("bucket", m.cfg.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}()

	m.Logger.Debug().Str("bucket", m.cfg.Bucket).Msg("InfluxDB writer initialized")
}

// WritePoint writes a point to InfluxDB or backup file.
func (m *Manager) WritePoint(point *influxdb2_write.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IsValid {
		m.Writer.WritePoint(point)
		return nil
	}
	if m.BackupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}

	lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	if _, err := m.BackupWriter.Write([]byte(lineProtocol)); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %s", err)
	}
	return nil
}

// StoreReplay writes one point per decoded event.
func (m *Manager) StoreReplay(item *storage.Item) error {
	rep := item.Replay
	players := cache.FromRoster(rep.Players)
	base := BaseTime(rep.Header)
	id := item.ID.String()

	for _, rec := range rep.Events {
		if err := m.WritePoint(EventPoint(id, base, rec, players)); err != nil {
			return err
		}
	}
	m.Logger.Debug().Str("replay", id).Int("points", len(rep.Events)).Msg("Wrote replay events")
	return nil
}

// Close flushes pending points and closes the client or backup file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Writer != nil {
		m.Writer.Flush()
	}
	if m.Client != nil {
		m.Client.Close()
	}
	var err error
	if m.BackupWriter != nil {
		err = m.BackupWriter.Close()
		if cerr := m.backupFile.Close(); err == nil {
			err = cerr
		}
		m.BackupWriter = nil
	}
	return err
}

// BaseTime is the capture time of the replay. Versions that do not store it
// start at the unix epoch so event offsets remain ordered.
func BaseTime(h core.Header) time.Time {
	if ts := h.CaptureTime(); !ts.IsZero() {
		return ts
	}
	return time.Unix(0, 0).UTC()
}

// EventPoint builds the point for one event. Measurement is the event kind,
// the event's own values become fields with nested names joined by '_'.
func EventPoint(replayID string, base time.Time, rec core.EventRecord, players *cache.PlayerCache) *influxdb2_write.Point {
	offset := float64(rec.Time)
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		offset = 0
	}
	ts := base.Add(time.Duration(offset * float64(time.Second)))

	point := influxdb2_write.NewPointWithMeasurement(rec.Event.Kind()).
		AddTag("replay_id", replayID).
		AddTag("player", players.Name(rec.Sender)).
		AddTag("opcode", strconv.Itoa(int(rec.Opcode))).
		AddField("offset", offset).
		AddField("index", rec.Index).
		AddField("sender", rec.Sender).
		SetTime(ts)

	fields := eventFields(rec.Event)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		point.AddField(k, fields[k])
	}
	return point
}

// eventFields flattens the JSON form of ev into scalar fields.
func eventFields(ev core.Event) map[string]any {
	out := make(map[string]any)
	data, err := json.Marshal(ev)
	if err != nil {
		return out
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return out
	}
	flatten("", tree, out)
	return out
}

func flatten(prefix string, v any, out map[string]any) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			flatten(join(prefix, k), child, out)
		}
	case []any:
		for i, child := range val {
			flatten(join(prefix, strconv.Itoa(i)), child, out)
		}
	case float64, string, bool:
		out[prefix] = val
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "_" + key
}
