// libctl is the operational companion of the library server: it bulk
// loads CSV fixtures into Postgres and resynchronizes the identity
// sequences after a load.
package main

func main() {
	Execute()
}
