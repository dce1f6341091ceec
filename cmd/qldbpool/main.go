// qldbpool exercises and inspects the qldb-go session pool.
//
// Usage:
//
//	qldbpool soak [flags]
//	qldbpool config init [path]
//	qldbpool version
package main

func main() {
	Execute()
}
