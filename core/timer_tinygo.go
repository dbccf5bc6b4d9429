//go:build tinygo && lpc18xx

package core

//export SysTick_Handler
func sysTickISR() {
	SysTickHandler()
}
