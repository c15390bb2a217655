//go:build darwin

package core

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>

typedef struct {
	int width;
	int height;
	int pixelWidth;
	int pixelHeight;
	double refreshRate;
	int usable;
} dmMode;

// includes the scaled (HiDPI) variants which are hidden by default
static CFArrayRef dmCopyModes(CGDirectDisplayID display) {
	const void *keys[] = { kCGDisplayShowDuplicateLowResolutionModes };
	const void *values[] = { kCFBooleanTrue };
	CFDictionaryRef opts = CFDictionaryCreate(NULL, keys, values, 1,
		&kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
	CFArrayRef modes = CGDisplayCopyAllDisplayModes(display, opts);
	CFRelease(opts);
	return modes;
}

static void dmFill(CGDisplayModeRef m, dmMode *out) {
	out->width = (int)CGDisplayModeGetWidth(m);
	out->height = (int)CGDisplayModeGetHeight(m);
	out->pixelWidth = (int)CGDisplayModeGetPixelWidth(m);
	out->pixelHeight = (int)CGDisplayModeGetPixelHeight(m);
	out->refreshRate = CGDisplayModeGetRefreshRate(m);
	out->usable = CGDisplayModeIsUsableForDesktopGUI(m) ? 1 : 0;
}

static int dmListModes(CGDirectDisplayID display, dmMode *out, int max) {
	CFArrayRef modes = dmCopyModes(display);
	if (modes == NULL) {
		return -1;
	}
	CFIndex n = CFArrayGetCount(modes);
	int written = 0;
	for (CFIndex i = 0; i < n && written < max; i++) {
		dmFill((CGDisplayModeRef)CFArrayGetValueAtIndex(modes, i), &out[written]);
		written++;
	}
	CFRelease(modes);
	return written;
}

static int dmCurrentMode(CGDirectDisplayID display, dmMode *out) {
	CGDisplayModeRef m = CGDisplayCopyDisplayMode(display);
	if (m == NULL) {
		return -1;
	}
	dmFill(m, out);
	CGDisplayModeRelease(m);
	return 0;
}

static int dmSetMode(CGDirectDisplayID display, int index) {
	CFArrayRef modes = dmCopyModes(display);
	if (modes == NULL) {
		return -1;
	}
	if (index < 0 || index >= CFArrayGetCount(modes)) {
		CFRelease(modes);
		return -2;
	}
	CGDisplayModeRef m = (CGDisplayModeRef)CFArrayGetValueAtIndex(modes, index);
	CGDisplayConfigRef config;
	CGError err = CGBeginDisplayConfiguration(&config);
	if (err == kCGErrorSuccess) {
		err = CGConfigureDisplayWithDisplayMode(config, display, m, NULL);
		if (err == kCGErrorSuccess) {
			err = CGCompleteDisplayConfiguration(config, kCGConfigurePermanently);
		} else {
			CGCancelDisplayConfiguration(config);
		}
	}
	CFRelease(modes);
	return (int)err;
}
*/
import "C"

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hamidzr/displaymode/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	maxDisplays = 16
	maxModes    = 512
)

// CoreGraphicsSource reads and sets display modes through CoreGraphics.
type CoreGraphicsSource struct {
	epoch atomic.Uint64
}

// NewSystemSource returns the display source of the running OS.
func NewSystemSource() (DisplaySource, error) {
	return &CoreGraphicsSource{}, nil
}

// Displays implements DisplaySource.
func (s *CoreGraphicsSource) Displays(ctx context.Context) ([]model.Display, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := make([]C.CGDirectDisplayID, maxDisplays)
	var count C.uint32_t
	if res := C.CGGetActiveDisplayList(C.uint32_t(maxDisplays), &ids[0], &count); res != C.kCGErrorSuccess {
		return nil, errors.Errorf("CGGetActiveDisplayList failed: CoreGraphics error %d", int(res))
	}

	epoch := s.epoch.Add(1)
	mainID := uint32(C.CGMainDisplayID())
	displays := make([]model.Display, 0, int(count))
	for _, cid := range ids[:count] {
		id := uint32(cid)
		modes, err := listModes(cid, epoch)
		if err != nil {
			logrus.WithError(err).WithField("display", id).Warn("skipping display")
			continue
		}
		d := model.Display{
			ID:     id,
			Name:   displayName(cid),
			IsMain: id == mainID,
			Modes:  modes,
		}
		var cur C.dmMode
		if C.dmCurrentMode(cid, &cur) == 0 {
			current := toRawMode(cur)
			for _, m := range modes {
				if m.SameShape(current) {
					current = m
					break
				}
			}
			d.Current = &current
		}
		displays = append(displays, d)
	}
	logrus.WithField("epoch", epoch).Tracef("enumerated %d displays", len(displays))
	return displays, nil
}

// Apply implements DisplaySource.
func (s *CoreGraphicsSource) Apply(ctx context.Context, displayID uint32, mode model.RawMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mode.Handle.Epoch != s.epoch.Load() || mode.Handle.Display != displayID {
		return model.ErrStaleHandle
	}
	cid := C.CGDirectDisplayID(displayID)
	// the OS array may have been rebuilt since enumeration; make sure the
	// index still points at the same mode before switching to it.
	modes, err := listModes(cid, mode.Handle.Epoch)
	if err != nil {
		return err
	}
	idx := mode.Handle.Index
	if !containsHandle(modes, idx, mode) {
		return model.ErrStaleHandle
	}
	switch res := C.dmSetMode(cid, C.int(idx)); res {
	case 0:
		return nil
	case -1:
		return errors.Wrapf(model.ErrDisplayNotFound, "display %d", displayID)
	case -2:
		return model.ErrStaleHandle
	default:
		return errors.Errorf("failed to set display mode: CoreGraphics error %d", int(res))
	}
}

func listModes(cid C.CGDirectDisplayID, epoch uint64) ([]model.RawMode, error) {
	buf := make([]C.dmMode, maxModes)
	n := int(C.dmListModes(cid, &buf[0], C.int(maxModes)))
	if n < 0 {
		return nil, errors.Wrapf(model.ErrDisplayNotFound, "display %d", uint32(cid))
	}
	modes := make([]model.RawMode, 0, n)
	for i := 0; i < n; i++ {
		m := toRawMode(buf[i])
		// index must stay aligned with the OS array even for skipped modes
		m.Handle = model.NativeHandle{Display: uint32(cid), Epoch: epoch, Index: i}
		if buf[i].usable == 0 {
			continue
		}
		modes = append(modes, m)
	}
	return modes, nil
}

func containsHandle(modes []model.RawMode, idx int, mode model.RawMode) bool {
	for _, m := range modes {
		if m.Handle.Index == idx {
			return m.SameShape(mode)
		}
	}
	return false
}

func toRawMode(m C.dmMode) model.RawMode {
	return model.RawMode{
		Width:       int(m.width),
		Height:      int(m.height),
		RefreshRate: float64(m.refreshRate),
		IsHiDPI:     int(m.pixelWidth) > int(m.width),
	}
}

func displayName(cid C.CGDirectDisplayID) string {
	if C.CGDisplayIsBuiltin(cid) != 0 {
		return "Built-in Display"
	}
	return fmt.Sprintf("Display %d", uint32(cid))
}
