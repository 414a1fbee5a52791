/*
Copyright © 2026 the PhenoVPRM authors.
This file is part of PhenoVPRM.

PhenoVPRM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PhenoVPRM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PhenoVPRM.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command phenovprm runs the PhenoVPRM phenology and carbon exchange
// model from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/phenovprm/phenoutil"
)

func main() {
	if err := phenoutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
