// Kulu - Idle Cloud Resource Reclaimer
// Scan. Verify. Reclaim.
package main

func main() {
	Execute()
}
