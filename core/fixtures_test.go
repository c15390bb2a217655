package core

import "github.com/hamidzr/displaymode/model"

func testDisplays() []model.Display {
	builtinCurrent := mode(1512, 982, 120, true)
	externalCurrent := mode(2560, 1440, 60, false)
	return []model.Display{
		{
			ID:      1,
			Name:    "Built-in Display",
			IsMain:  true,
			Current: &builtinCurrent,
			Modes:   laptopModes(),
		},
		{
			ID:      69733382,
			Name:    "LG HDR 4K",
			Current: &externalCurrent,
			Modes: []model.RawMode{
				mode(3840, 2160, 60, false),
				mode(3840, 2160, 30, false),
				mode(2560, 1440, 59.94, false),
				mode(2560, 1440, 60, false),
				mode(1920, 1080, 60, true),
				mode(1920, 1080, 60, false),
			},
		},
	}
}
