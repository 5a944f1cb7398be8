package ascii

// Ramp orders characters from densest to sparsest. Dark pixels draw dense.
const Ramp = "@%#*+=-:. "

// Char buckets an intensity linearly onto the ramp.
func Char(v uint8) byte {
	return Ramp[int(v)*(len(Ramp)-1)/255]
}
