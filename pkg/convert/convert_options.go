package convert

type Option func(c *Converter)

func WithSize(width, height int) Option {
	return func(c *Converter) {
		c.width = width
		c.height = height
	}
}

func WithThreshold(threshold uint8) Option {
	return func(c *Converter) {
		c.threshold = threshold
	}
}

func WithInvert(invert bool) Option {
	return func(c *Converter) {
		c.invert = invert
	}
}

func WithLetterbox(letterbox bool) Option {
	return func(c *Converter) {
		c.letterbox = letterbox
	}
}

// WithStep keeps one frame out of every step.
func WithStep(step int) Option {
	return func(c *Converter) {
		if step > 0 {
			c.step = step
		}
	}
}
