// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package physic_test

import (
	"fmt"

	"periph.io/x/colorcal/conn/physic"
)

func ExampleTemperature() {
	fmt.Printf("%s\n", 6504*physic.Kelvin)
	fmt.Printf("%s\n", 5520*physic.Kelvin+330*physic.MilliKelvin)
	// Output:
	// 6.504kK
	// 5.520kK
}
