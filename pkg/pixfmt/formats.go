package pixfmt

// Format table. Names follow the usual lower-case conventions (yuv420p,
// nv12, rgb24, ...). Comp order is Y,U,V,A or R,G,B,A.

func init() {
	// gray carries no range signalling and is always full range
	register(&Descriptor{Name: "gray", NbComponents: 1, Flags: FlagPlanar | FlagFullRange,
		Comp: [4]Component{{0, 1, 0, 0, 8}}})
	register(&Descriptor{Name: "gray10le", NbComponents: 1, Flags: FlagPlanar | FlagFullRange,
		Comp: [4]Component{{0, 2, 0, 0, 10}}})
	register(&Descriptor{Name: "gray12le", NbComponents: 1, Flags: FlagPlanar | FlagFullRange,
		Comp: [4]Component{{0, 2, 0, 0, 12}}})
	register(&Descriptor{Name: "gray16le", NbComponents: 1, Flags: FlagPlanar | FlagFullRange,
		Comp: [4]Component{{0, 2, 0, 0, 16}}})
	register(&Descriptor{Name: "gray16be", NbComponents: 1, Flags: FlagPlanar | FlagBE | FlagFullRange,
		Comp: [4]Component{{0, 2, 0, 0, 16}}})
	register(&Descriptor{Name: "grayf32le", NbComponents: 1, Flags: FlagPlanar | FlagFloat | FlagFullRange,
		Comp: [4]Component{{0, 4, 0, 0, 16}}})

	// planar yuv, 8 bit
	for _, f := range []struct {
		name   string
		lw, lh int
		flags  Flag
	}{
		{"yuv420p", 1, 1, 0},
		{"yuv422p", 1, 0, 0},
		{"yuv444p", 0, 0, 0},
		{"yuv440p", 0, 1, 0},
		{"yuv411p", 2, 0, 0},
		{"yuv410p", 2, 2, 0},
		{"yuvj420p", 1, 1, FlagFullRange},
		{"yuvj422p", 1, 0, FlagFullRange},
		{"yuvj444p", 0, 0, FlagFullRange},
	} {
		register(planarYUV(f.name, f.lw, f.lh, 8, f.flags))
	}

	// planar yuv, high bit depth
	for _, f := range []struct {
		name   string
		lw, lh int
		depth  int
		flags  Flag
	}{
		{"yuv420p9le", 1, 1, 9, 0},
		{"yuv420p10le", 1, 1, 10, 0},
		{"yuv420p12le", 1, 1, 12, 0},
		{"yuv420p14le", 1, 1, 14, 0},
		{"yuv420p16le", 1, 1, 16, 0},
		{"yuv420p16be", 1, 1, 16, FlagBE},
		{"yuv422p10le", 1, 0, 10, 0},
		{"yuv422p16le", 1, 0, 16, 0},
		{"yuv444p10le", 0, 0, 10, 0},
		{"yuv444p12le", 0, 0, 12, 0},
		{"yuv444p16le", 0, 0, 16, 0},
	} {
		register(planarYUV(f.name, f.lw, f.lh, f.depth, f.flags))
	}

	// planar yuv with alpha
	yuva420p := planarYUV("yuva420p", 1, 1, 8, FlagAlpha)
	yuva420p.NbComponents = 4
	yuva420p.Comp[3] = Component{3, 1, 0, 0, 8}
	register(yuva420p)
	yuva444p := planarYUV("yuva444p", 0, 0, 8, FlagAlpha)
	yuva444p.NbComponents = 4
	yuva444p.Comp[3] = Component{3, 1, 0, 0, 8}
	register(yuva444p)

	// semi-planar
	register(&Descriptor{Name: "nv12", NbComponents: 3, Log2ChromaW: 1, Log2ChromaH: 1, Flags: FlagPlanar,
		Comp: [4]Component{{0, 1, 0, 0, 8}, {1, 2, 0, 0, 8}, {1, 2, 1, 0, 8}}})
	register(&Descriptor{Name: "nv21", NbComponents: 3, Log2ChromaW: 1, Log2ChromaH: 1, Flags: FlagPlanar,
		Comp: [4]Component{{0, 1, 0, 0, 8}, {1, 2, 1, 0, 8}, {1, 2, 0, 0, 8}}})
	register(&Descriptor{Name: "nv16", NbComponents: 3, Log2ChromaW: 1, Log2ChromaH: 0, Flags: FlagPlanar,
		Comp: [4]Component{{0, 1, 0, 0, 8}, {1, 2, 0, 0, 8}, {1, 2, 1, 0, 8}}})
	register(&Descriptor{Name: "nv24", NbComponents: 3, Flags: FlagPlanar,
		Comp: [4]Component{{0, 1, 0, 0, 8}, {1, 2, 0, 0, 8}, {1, 2, 1, 0, 8}}})
	register(&Descriptor{Name: "p010le", NbComponents: 3, Log2ChromaW: 1, Log2ChromaH: 1, Flags: FlagPlanar,
		Comp: [4]Component{{0, 2, 0, 6, 10}, {1, 4, 0, 6, 10}, {1, 4, 2, 6, 10}}})
	register(&Descriptor{Name: "p016le", NbComponents: 3, Log2ChromaW: 1, Log2ChromaH: 1, Flags: FlagPlanar,
		Comp: [4]Component{{0, 2, 0, 0, 16}, {1, 4, 0, 0, 16}, {1, 4, 2, 0, 16}}})

	// packed yuv
	register(&Descriptor{Name: "yuyv422", NbComponents: 3, Log2ChromaW: 1,
		Comp: [4]Component{{0, 2, 0, 0, 8}, {0, 4, 1, 0, 8}, {0, 4, 3, 0, 8}}})
	register(&Descriptor{Name: "uyvy422", NbComponents: 3, Log2ChromaW: 1,
		Comp: [4]Component{{0, 2, 1, 0, 8}, {0, 4, 0, 0, 8}, {0, 4, 2, 0, 8}}})
	register(&Descriptor{Name: "yvyu422", NbComponents: 3, Log2ChromaW: 1,
		Comp: [4]Component{{0, 2, 0, 0, 8}, {0, 4, 3, 0, 8}, {0, 4, 1, 0, 8}}})

	// packed rgb
	register(&Descriptor{Name: "rgb24", NbComponents: 3, Flags: FlagRGB,
		Comp: [4]Component{{0, 3, 0, 0, 8}, {0, 3, 1, 0, 8}, {0, 3, 2, 0, 8}}})
	register(&Descriptor{Name: "bgr24", NbComponents: 3, Flags: FlagRGB,
		Comp: [4]Component{{0, 3, 2, 0, 8}, {0, 3, 1, 0, 8}, {0, 3, 0, 0, 8}}})
	register(&Descriptor{Name: "rgba", NbComponents: 4, Flags: FlagRGB | FlagAlpha,
		Comp: [4]Component{{0, 4, 0, 0, 8}, {0, 4, 1, 0, 8}, {0, 4, 2, 0, 8}, {0, 4, 3, 0, 8}}})
	register(&Descriptor{Name: "bgra", NbComponents: 4, Flags: FlagRGB | FlagAlpha,
		Comp: [4]Component{{0, 4, 2, 0, 8}, {0, 4, 1, 0, 8}, {0, 4, 0, 0, 8}, {0, 4, 3, 0, 8}}})
	register(&Descriptor{Name: "argb", NbComponents: 4, Flags: FlagRGB | FlagAlpha,
		Comp: [4]Component{{0, 4, 1, 0, 8}, {0, 4, 2, 0, 8}, {0, 4, 3, 0, 8}, {0, 4, 0, 0, 8}}})
	register(&Descriptor{Name: "abgr", NbComponents: 4, Flags: FlagRGB | FlagAlpha,
		Comp: [4]Component{{0, 4, 3, 0, 8}, {0, 4, 2, 0, 8}, {0, 4, 1, 0, 8}, {0, 4, 0, 0, 8}}})
	register(&Descriptor{Name: "rgb48le", NbComponents: 3, Flags: FlagRGB,
		Comp: [4]Component{{0, 6, 0, 0, 16}, {0, 6, 2, 0, 16}, {0, 6, 4, 0, 16}}})
	register(&Descriptor{Name: "rgb48be", NbComponents: 3, Flags: FlagRGB | FlagBE,
		Comp: [4]Component{{0, 6, 0, 0, 16}, {0, 6, 2, 0, 16}, {0, 6, 4, 0, 16}}})

	// planar rgb, stored G, B, R like the codecs that produce it
	register(&Descriptor{Name: "gbrp", NbComponents: 3, Flags: FlagRGB | FlagPlanar,
		Comp: [4]Component{{2, 1, 0, 0, 8}, {0, 1, 0, 0, 8}, {1, 1, 0, 0, 8}}})
	register(&Descriptor{Name: "gbrap", NbComponents: 4, Flags: FlagRGB | FlagPlanar | FlagAlpha,
		Comp: [4]Component{{2, 1, 0, 0, 8}, {0, 1, 0, 0, 8}, {1, 1, 0, 0, 8}, {3, 1, 0, 0, 8}}})
}

func planarYUV(name string, lw, lh, depth int, flags Flag) *Descriptor {
	step := 1
	if depth > 8 {
		step = 2
	}
	return &Descriptor{
		Name:         name,
		NbComponents: 3,
		Log2ChromaW:  lw,
		Log2ChromaH:  lh,
		Flags:        FlagPlanar | flags,
		Comp: [4]Component{
			{0, step, 0, 0, depth},
			{1, step, 0, 0, depth},
			{2, step, 0, 0, depth},
		},
	}
}
