package providers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/afero"
)

// UpdateLogger receives events of offline database reloads.
type UpdateLogger interface {
	UpdateInfo(name, message string)
	UpdateError(name string, err error)
}

// dbWatcher keeps an offline database fresh. It rereads a file every
// checkEvery and passes its contents to open if checksum has changed.
// Tools like geoipupdate replace database files in place so a restart
// is not required.
type dbWatcher struct {
	ctx        context.Context
	cancel     context.CancelFunc
	name       string
	fs         afero.Fs
	path       string
	checkEvery time.Duration
	checksum   string
	logger     UpdateLogger
	open       func([]byte) error
}

func (d *dbWatcher) Start() error {
	if _, err := d.doUpdate(); err != nil {
		return err
	}

	if d.checkEvery > 0 {
		go d.bgUpdate()
	}

	return nil
}

func (d *dbWatcher) Shutdown() {
	d.cancel()
}

func (d *dbWatcher) bgUpdate() {
	ticker := time.NewTicker(d.checkEvery)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			updated, err := d.doUpdate()

			switch {
			case d.logger == nil:
			case err != nil:
				d.logger.UpdateError(d.name, err)
			case updated:
				d.logger.UpdateInfo(d.name, "db has been updated")
			}
		}
	}
}

func (d *dbWatcher) doUpdate() (bool, error) {
	content, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		return false, fmt.Errorf("cannot read a database file: %w", err)
	}

	checksum := d.makeChecksum(content)
	if checksum == d.checksum {
		return false, nil
	}

	if err := d.open(content); err != nil {
		return false, fmt.Errorf("cannot open a database %s: %w", d.path, err)
	}

	d.checksum = checksum

	return true, nil
}

func (d *dbWatcher) makeChecksum(content []byte) string {
	sum := sha256.Sum256(content)

	return hex.EncodeToString(sum[:])
}

func newDBWatcher(name string, fs afero.Fs, path string, checkEvery time.Duration,
	logger UpdateLogger, open func([]byte) error) *dbWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &dbWatcher{
		ctx:        ctx,
		cancel:     cancel,
		name:       name,
		fs:         fs,
		path:       path,
		checkEvery: checkEvery,
		logger:     logger,
		open:       open,
	}
}
