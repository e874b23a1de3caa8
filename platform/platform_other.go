//go:build !linux

package platform

func pinToCore(core int) error {
	return ErrNotSupported
}

func setRealtime() error {
	return ErrNotSupported
}

func lockMemory(buf []byte) error {
	return ErrNotSupported
}
